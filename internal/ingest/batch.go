package ingest

import (
	"fmt"
	"time"

	"github.com/campusboard/busboard/internal/domain"
)

// ValidateBatch runs ParseRow over every row and collects all errors.
// The batch is all-or-nothing: entries are returned only when every row is
// valid, otherwise the returned error list is non-empty and entries is nil.
// An empty batch is rejected with domain.ErrEmptyBatch.
func ValidateBatch(rows []domain.RawRow, loc *time.Location) ([]domain.ScheduleEntry, []domain.RowValidationError, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("ingest.ValidateBatch: %w", domain.ErrEmptyBatch)
	}

	entries := make([]domain.ScheduleEntry, 0, len(rows))
	var errs []domain.RowValidationError
	for i, row := range rows {
		entry, rowErrs := ParseRow(row, i, loc)
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}
		entries = append(entries, entry)
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return entries, nil, nil
}
