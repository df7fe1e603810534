package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxRepos are repositories bound to a single open transaction.
type TxRepos struct {
	Schedules ScheduleRepo
	OptedIn   OptedInRepo
}

// TxManager runs a unit of work inside one database transaction.
// If fn returns an error the transaction is rolled back and the error is
// returned unchanged; otherwise it is committed.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx (as a savepoint),
// so tests can nest the manager inside their own rolled-back transaction.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgTxManager struct {
	db beginner
}

// NewTxManager constructs a TxManager that opens transactions on db.
func NewTxManager(db beginner) TxManager {
	return &pgTxManager{db: db}
}

func (m *pgTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxManager.WithTx: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	repos := TxRepos{
		Schedules: NewScheduleRepo(tx),
		OptedIn:   NewOptedInRepo(tx),
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxManager.WithTx: commit: %w", err)
	}
	return nil
}
