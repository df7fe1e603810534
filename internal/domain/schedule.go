// Package domain contains the core data types for the campus bus board.
// It depends only on uuid and is imported by every other internal package.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultStatus is applied when a departure is created without a status label.
const DefaultStatus = "On Time"

// ScheduleEntry is a single bus departure on the board.
type ScheduleEntry struct {
	ID            uuid.UUID
	Origin        Location
	Destination   Location
	DepartureTime time.Time
	Status        string
	IsPaid        bool
	CreatedAt     time.Time
	ModifiedAt    time.Time
}

// Validate enforces the entry invariants shared by manual edits and uploads:
//   - both endpoints are set, and special endpoints carry a non-empty name
//   - origin and destination are not the same standard location
//   - the departure time is set
func (e ScheduleEntry) Validate() error {
	if err := validateEndpoint("origin", e.Origin); err != nil {
		return err
	}
	if err := validateEndpoint("destination", e.Destination); err != nil {
		return err
	}
	if !e.Origin.IsSpecial() && !e.Destination.IsSpecial() && e.Origin.Name() == e.Destination.Name() {
		return fmt.Errorf("%w: origin and destination cannot be the same", ErrValidation)
	}
	if e.DepartureTime.IsZero() {
		return fmt.Errorf("%w: departure_time is required", ErrValidation)
	}
	return nil
}

func validateEndpoint(field string, l Location) error {
	if l.IsZero() {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	if l.IsSpecial() && strings.TrimSpace(l.Name()) == "" {
		return fmt.Errorf("%w: special %s name is required", ErrValidation, field)
	}
	if !l.IsSpecial() && !IsStandardLocation(l.Name()) {
		return fmt.Errorf("%w: unknown %s %q", ErrValidation, field, l.Name())
	}
	return nil
}

// Serves reports whether the entry belongs to the given board view:
// either endpoint matches the view, and the Special view matches any special endpoint.
func (e ScheduleEntry) Serves(view string) bool {
	return e.Origin.Kind() == view || e.Destination.Kind() == view
}
