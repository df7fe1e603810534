package service

import (
	"context"
	"fmt"
	"time"

	"github.com/campusboard/busboard/internal/domain"
)

// ScheduleLister is the read side BoardService needs.
// *ScheduleService satisfies it, so the board shares the list cache.
type ScheduleLister interface {
	List(ctx context.Context) ([]domain.ScheduleEntry, error)
}

// BoardService builds the classified departure board for one location view.
type BoardService struct {
	schedules ScheduleLister
	loc       *time.Location
	now       func() time.Time
}

// NewBoardService constructs a BoardService. Day boundaries are computed in
// loc. now may be nil, in which case time.Now is used.
func NewBoardService(schedules ScheduleLister, loc *time.Location, now func() time.Time) *BoardService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &BoardService{schedules: schedules, loc: loc, now: now}
}

// Board returns the upcoming and completed departures for view. An empty view
// selects the default location; an unknown one is a validation error.
func (s *BoardService) Board(ctx context.Context, view string) (domain.Board, error) {
	location, ok := domain.ParseViewLocation(view)
	if !ok {
		return domain.Board{}, fmt.Errorf("service.BoardService.Board: %w: unknown location %q", domain.ErrValidation, view)
	}

	entries, err := s.schedules.List(ctx)
	if err != nil {
		return domain.Board{}, fmt.Errorf("service.BoardService.Board: %w", err)
	}
	return domain.BuildBoard(entries, location, s.now().In(s.loc)), nil
}
