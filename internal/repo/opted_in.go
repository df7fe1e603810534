package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/campusboard/busboard/internal/domain"
)

// OptedInRepo persists the opted-in student address list.
type OptedInRepo interface {
	// InsertMissing adds every address not already present and returns how many
	// rows were actually inserted. Existing addresses are left untouched.
	InsertMissing(ctx context.Context, emails []string) (int64, error)

	// List returns all addresses ordered alphabetically.
	List(ctx context.Context) ([]domain.OptedInEmail, error)
}

// pgOptedInRepo is the Postgres implementation of OptedInRepo.
type pgOptedInRepo struct {
	db db
}

// NewOptedInRepo constructs an OptedInRepo backed by the provided db connection.
func NewOptedInRepo(db db) OptedInRepo {
	return &pgOptedInRepo{db: db}
}

// InsertMissing relies on the unique email constraint; duplicates inside the
// input collapse the same way.
func (r *pgOptedInRepo) InsertMissing(ctx context.Context, emails []string) (int64, error) {
	if len(emails) == 0 {
		return 0, nil
	}
	const q = `
		INSERT INTO opted_in_emails (email)
		SELECT unnest(@emails::text[])
		ON CONFLICT (email) DO NOTHING`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"emails": emails})
	if err != nil {
		return 0, fmt.Errorf("repo.OptedInRepo.InsertMissing: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List returns every opted-in address.
func (r *pgOptedInRepo) List(ctx context.Context) ([]domain.OptedInEmail, error) {
	const q = `
		SELECT id, email, created_at
		FROM opted_in_emails
		ORDER BY email`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.OptedInRepo.List: %w", err)
	}
	defer rows.Close()

	out := []domain.OptedInEmail{}
	for rows.Next() {
		var (
			o  domain.OptedInEmail
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &o.Email, &o.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("repo.OptedInRepo.List: scan: %w", err)
		}
		o.ID = uuid.UUID(id.Bytes)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.OptedInRepo.List: rows: %w", err)
	}
	return out, nil
}
