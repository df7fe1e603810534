// Package repo contains all database access logic for the bus board.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/campusboard/busboard/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// ScheduleRepo defines the persistence operations for bus departures.
// The service layer depends on this interface so it can be unit-tested with a mock.
type ScheduleRepo interface {
	// List returns every departure ordered by departure_time ascending.
	List(ctx context.Context) ([]domain.ScheduleEntry, error)

	// GetByID retrieves a single departure.
	// Returns domain.ErrNotFound if no departure with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ScheduleEntry, error)

	// Create inserts a departure and returns the persisted record with
	// id, created_at and modified_at populated by the database.
	Create(ctx context.Context, entry domain.ScheduleEntry) (domain.ScheduleEntry, error)

	// Update overwrites the mutable fields of a departure.
	// Returns domain.ErrNotFound if no departure with that ID exists.
	Update(ctx context.Context, entry domain.ScheduleEntry) (domain.ScheduleEntry, error)

	// Delete removes a departure by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll empties the schedule and returns the number of rows removed.
	DeleteAll(ctx context.Context) (int64, error)

	// InsertBatch bulk-inserts entries and returns the number of rows written.
	InsertBatch(ctx context.Context, entries []domain.ScheduleEntry) (int64, error)
}

// pgScheduleRepo is the Postgres implementation of ScheduleRepo.
type pgScheduleRepo struct {
	db db
}

// NewScheduleRepo constructs a ScheduleRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewScheduleRepo(db db) ScheduleRepo {
	return &pgScheduleRepo{db: db}
}

const scheduleColumns = `id, origin, special_origin, destination, special_destination,
		       departure_time, status, is_paid, created_at, modified_at`

// List returns all departures, earliest first.
func (r *pgScheduleRepo) List(ctx context.Context) ([]domain.ScheduleEntry, error) {
	q := `SELECT ` + scheduleColumns + `
		FROM buses
		ORDER BY departure_time ASC, id ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.List: %w", err)
	}
	defer rows.Close()

	entries := []domain.ScheduleEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ScheduleRepo.List: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.List: rows: %w", err)
	}
	return entries, nil
}

// GetByID retrieves a departure by primary key.
func (r *pgScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ScheduleEntry, error) {
	q := `SELECT ` + scheduleColumns + `
		FROM buses
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanEntry(row)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("repo.ScheduleRepo.GetByID: %w", err)
	}
	return result, nil
}

// Create inserts a new departure row and returns the full persisted record.
func (r *pgScheduleRepo) Create(ctx context.Context, entry domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	q := `
		INSERT INTO buses (origin, special_origin, destination, special_destination,
		                   departure_time, status, is_paid)
		VALUES (@origin, @special_origin, @destination, @special_destination,
		        @departure_time, @status, @is_paid)
		RETURNING ` + scheduleColumns

	row := r.db.QueryRow(ctx, q, entryArgs(entry))
	result, err := scanEntry(row)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("repo.ScheduleRepo.Create: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable fields of a departure and bumps modified_at.
func (r *pgScheduleRepo) Update(ctx context.Context, entry domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	q := `
		UPDATE buses
		SET origin              = @origin,
		    special_origin      = @special_origin,
		    destination         = @destination,
		    special_destination = @special_destination,
		    departure_time      = @departure_time,
		    status              = @status,
		    is_paid             = @is_paid,
		    modified_at         = now()
		WHERE id = @id
		RETURNING ` + scheduleColumns

	args := entryArgs(entry)
	args["id"] = entry.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEntry(row)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("repo.ScheduleRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a departure by primary key.
func (r *pgScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM buses WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ScheduleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ScheduleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteAll removes every departure. Callers wanting an atomic replacement
// must run it through TxManager together with InsertBatch.
func (r *pgScheduleRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM buses`)
	if err != nil {
		return 0, fmt.Errorf("repo.ScheduleRepo.DeleteAll: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertBatch writes entries with the COPY protocol. ids and bookkeeping
// timestamps come from column defaults.
func (r *pgScheduleRepo) InsertBatch(ctx context.Context, entries []domain.ScheduleEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	columns := []string{
		"origin", "special_origin", "destination", "special_destination",
		"departure_time", "status", "is_paid",
	}
	src := pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
		e := entries[i]
		return []any{
			e.Origin.Kind(), e.Origin.SpecialName(),
			e.Destination.Kind(), e.Destination.SpecialName(),
			e.DepartureTime, e.Status, e.IsPaid,
		}, nil
	})

	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"buses"}, columns, src)
	if err != nil {
		return 0, fmt.Errorf("repo.ScheduleRepo.InsertBatch: %w", err)
	}
	return n, nil
}

func entryArgs(e domain.ScheduleEntry) pgx.NamedArgs {
	return pgx.NamedArgs{
		"origin":              e.Origin.Kind(),
		"special_origin":      e.Origin.SpecialName(), // nil becomes NULL
		"destination":         e.Destination.Kind(),
		"special_destination": e.Destination.SpecialName(),
		"departure_time":      e.DepartureTime,
		"status":              e.Status,
		"is_paid":             e.IsPaid,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry maps a single database row into a domain.ScheduleEntry,
// folding the kind/special-name column pairs back into Locations.
func scanEntry(s scanner) (domain.ScheduleEntry, error) {
	var (
		e                  domain.ScheduleEntry
		id                 pgtype.UUID
		origin, dest       string
		specialOrigin      *string
		specialDestination *string
		departure          time.Time
	)

	err := s.Scan(&id, &origin, &specialOrigin, &dest, &specialDestination,
		&departure, &e.Status, &e.IsPaid, &e.CreatedAt, &e.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ScheduleEntry{}, domain.ErrNotFound
		}
		return domain.ScheduleEntry{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.Origin = domain.LocationFromColumns(origin, specialOrigin)
	e.Destination = domain.LocationFromColumns(dest, specialDestination)
	e.DepartureTime = departure
	return e, nil
}
