// Package service contains the business logic for the bus board.
// Services enforce the admin gate, validate inputs and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusboard/busboard/internal/auth"
	"github.com/campusboard/busboard/internal/cache"
	"github.com/campusboard/busboard/internal/domain"
	"github.com/campusboard/busboard/internal/ingest"
	"github.com/campusboard/busboard/internal/repo"
)

// ScheduleService implements the schedule operations: listing, single-entry
// mutations and the all-or-nothing bulk replacement.
type ScheduleService struct {
	repo  repo.ScheduleRepo
	tx    repo.TxManager
	cache *cache.ScheduleCache
	loc   *time.Location
}

// NewScheduleService constructs a ScheduleService. Uploaded departure times
// are interpreted in loc. c may be nil to disable list caching.
func NewScheduleService(r repo.ScheduleRepo, tx repo.TxManager, c *cache.ScheduleCache, loc *time.Location) *ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleService{repo: r, tx: tx, cache: c, loc: loc}
}

// List returns every departure ordered by departure time. No role is required.
func (s *ScheduleService) List(ctx context.Context) ([]domain.ScheduleEntry, error) {
	if entries, ok := s.cache.Get(); ok {
		return entries, nil
	}
	gen := s.cache.Generation()
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.List: %w", err)
	}
	s.cache.Set(gen, entries)
	return entries, nil
}

// GetByID returns a single departure. No role is required.
func (s *ScheduleService) GetByID(ctx context.Context, id uuid.UUID) (domain.ScheduleEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("service.ScheduleService.GetByID: %w", err)
	}
	return entry, nil
}

// Create validates and persists a new departure.
func (s *ScheduleService) Create(ctx context.Context, entry domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("service.ScheduleService.Create: %w", err)
	}
	entry = normalize(entry)
	if err := entry.Validate(); err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("service.ScheduleService.Create: %w", err)
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("service.ScheduleService.Create: %w", err)
	}
	s.cache.Invalidate()
	return created, nil
}

// Update validates and overwrites an existing departure.
func (s *ScheduleService) Update(ctx context.Context, entry domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("service.ScheduleService.Update: %w", err)
	}
	entry = normalize(entry)
	if err := entry.Validate(); err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("service.ScheduleService.Update: %w", err)
	}

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return domain.ScheduleEntry{}, fmt.Errorf("service.ScheduleService.Update: %w", err)
	}
	s.cache.Invalidate()
	return updated, nil
}

// Delete removes a departure by ID.
func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := auth.RequireAdmin(ctx); err != nil {
		return fmt.Errorf("service.ScheduleService.Delete: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ScheduleService.Delete: %w", err)
	}
	s.cache.Invalidate()
	return nil
}

// ReplaceSchedule validates an uploaded batch and, only if every row is valid,
// swaps the stored schedule for it inside one transaction.
//
// A rejected batch is not an error: the returned result has Success false and
// carries the row errors. The error return is reserved for the admin gate and
// storage failures; in the latter case the previous schedule is intact.
func (s *ScheduleService) ReplaceSchedule(ctx context.Context, rows []domain.RawRow) (domain.UploadResult, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return domain.UploadResult{}, fmt.Errorf("service.ScheduleService.ReplaceSchedule: %w", err)
	}

	entries, rowErrs, err := ingest.ValidateBatch(rows, s.loc)
	if errors.Is(err, domain.ErrEmptyBatch) {
		return rejected(nil, "CSV file is empty."), nil
	}
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("service.ScheduleService.ReplaceSchedule: %w", err)
	}
	if len(rowErrs) > 0 {
		return rejected(rowErrs, fmt.Sprintf("Found %d errors. No data was uploaded.", len(rowErrs))), nil
	}

	var inserted int64
	err = s.tx.WithTx(ctx, func(ctx context.Context, repos repo.TxRepos) error {
		if _, err := repos.Schedules.DeleteAll(ctx); err != nil {
			return err
		}
		n, err := repos.Schedules.InsertBatch(ctx, entries)
		if err != nil {
			return err
		}
		inserted = n
		return nil
	})
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("service.ScheduleService.ReplaceSchedule: %w", err)
	}
	s.cache.Invalidate()

	return domain.UploadResult{
		Success:  true,
		Inserted: int(inserted),
		Errors:   []domain.RowValidationError{},
		Message:  fmt.Sprintf("Upload successful! %d schedules replaced.", inserted),
	}, nil
}

func rejected(errs []domain.RowValidationError, msg string) domain.UploadResult {
	if errs == nil {
		errs = []domain.RowValidationError{}
	}
	return domain.UploadResult{Success: false, Inserted: 0, Errors: errs, Message: msg}
}

func normalize(e domain.ScheduleEntry) domain.ScheduleEntry {
	e.Status = strings.TrimSpace(e.Status)
	if e.Status == "" {
		e.Status = domain.DefaultStatus
	}
	return e
}
