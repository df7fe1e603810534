package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/busboard/internal/domain"
	"github.com/campusboard/busboard/internal/service"
)

type listerFunc func(ctx context.Context) ([]domain.ScheduleEntry, error)

func (f listerFunc) List(ctx context.Context) ([]domain.ScheduleEntry, error) { return f(ctx) }

var _ service.ScheduleLister = listerFunc(nil)

func departure(from, to domain.Location, at time.Time) domain.ScheduleEntry {
	return domain.ScheduleEntry{Origin: from, Destination: to, DepartureTime: at, Status: domain.DefaultStatus}
}

func TestBoardService_Board(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, ist)
	u1 := domain.Standard(domain.LocationUniworld1)
	macro := domain.Standard(domain.LocationMacro)
	u2 := domain.Standard(domain.LocationUniworld2)

	entries := []domain.ScheduleEntry{
		departure(u1, macro, now.Add(-2*time.Hour)),           // completed
		departure(macro, u1, now.Add(time.Hour)),              // upcoming
		departure(u1, macro, now.Add(48*time.Hour)),           // beyond today
		departure(u2, macro, now.Add(30*time.Minute)),         // other location
		departure(u1, macro, now.Add(-26*time.Hour)),          // yesterday
		departure(domain.Special("Airport"), u1, now.Add(-time.Minute)),
	}
	svc := service.NewBoardService(listerFunc(func(context.Context) ([]domain.ScheduleEntry, error) {
		return entries, nil
	}), ist, func() time.Time { return now })

	board, err := svc.Board(context.Background(), "uniworld-1")

	require.NoError(t, err)
	assert.Equal(t, domain.LocationUniworld1, board.Location)
	require.Len(t, board.Upcoming, 1)
	assert.True(t, board.Upcoming[0].DepartureTime.Equal(now.Add(time.Hour)))
	require.Len(t, board.Completed, 2)
	assert.True(t, board.Completed[0].DepartureTime.Equal(now.Add(-time.Minute)), "completed is newest first")
	assert.False(t, board.AllCompleted)
}

func TestBoardService_Board_DefaultLocation(t *testing.T) {
	svc := service.NewBoardService(listerFunc(func(context.Context) ([]domain.ScheduleEntry, error) {
		return nil, nil
	}), ist, nil)

	board, err := svc.Board(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultViewLocation, board.Location)
	assert.NotNil(t, board.Upcoming)
	assert.NotNil(t, board.Completed)
}

func TestBoardService_Board_SpecialShowsFutureDays(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, ist)
	trip := departure(domain.Special("Lonavala"), domain.Standard(domain.LocationMacro), now.Add(72*time.Hour))
	svc := service.NewBoardService(listerFunc(func(context.Context) ([]domain.ScheduleEntry, error) {
		return []domain.ScheduleEntry{trip}, nil
	}), ist, func() time.Time { return now })

	special, err := svc.Board(context.Background(), domain.LocationSpecial)
	require.NoError(t, err)
	macro, err := svc.Board(context.Background(), domain.LocationMacro)
	require.NoError(t, err)

	assert.Len(t, special.Upcoming, 1)
	assert.Empty(t, macro.Upcoming)
}

func TestBoardService_Board_UnknownLocation(t *testing.T) {
	svc := service.NewBoardService(listerFunc(func(context.Context) ([]domain.ScheduleEntry, error) {
		t.Fatal("lister must not be called for an invalid view")
		return nil, nil
	}), ist, nil)

	_, err := svc.Board(context.Background(), "Narnia")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBoardService_Board_ListError(t *testing.T) {
	boom := errors.New("boom")
	svc := service.NewBoardService(listerFunc(func(context.Context) ([]domain.ScheduleEntry, error) {
		return nil, boom
	}), ist, nil)

	_, err := svc.Board(context.Background(), "")

	assert.ErrorIs(t, err, boom)
}
