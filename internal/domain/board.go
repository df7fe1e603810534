package domain

import (
	"sort"
	"time"
)

// Bucket is the display bucket a departure falls into for a given instant.
type Bucket int

const (
	// BucketHidden entries are shown in neither list.
	BucketHidden Bucket = iota
	BucketUpcoming
	BucketCompleted
)

func (b Bucket) String() string {
	switch b {
	case BucketUpcoming:
		return "upcoming"
	case BucketCompleted:
		return "completed"
	default:
		return "hidden"
	}
}

// Classify places a departure into a bucket for the given board view.
// It is a pure function of its inputs. Day boundaries are computed in now's location.
//
//   - departures before the start of today are hidden in every view
//   - a departure at or before now is completed (no grace period)
//   - a later departure is upcoming; outside the Special view it must also
//     leave before the end of today
func Classify(departure time.Time, view string, now time.Time) Bucket {
	todayStart := StartOfDay(now)
	if departure.Before(todayStart) {
		return BucketHidden
	}
	if !departure.After(now) {
		return BucketCompleted
	}
	if view != LocationSpecial && !departure.Before(todayStart.AddDate(0, 0, 1)) {
		return BucketHidden
	}
	return BucketUpcoming
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Board is the classified view of the schedule for one location.
type Board struct {
	Location  string
	Now       time.Time
	Upcoming  []ScheduleEntry
	Completed []ScheduleEntry
	// AllCompleted is set when the view has buses today but none left to depart.
	AllCompleted bool
}

// BuildBoard filters entries to the view and classifies each one against now.
// Upcoming is ordered soonest first, Completed most recent first.
// The input slice is not modified.
func BuildBoard(entries []ScheduleEntry, view string, now time.Time) Board {
	b := Board{
		Location:  view,
		Now:       now,
		Upcoming:  []ScheduleEntry{},
		Completed: []ScheduleEntry{},
	}
	for _, e := range entries {
		if !e.Serves(view) {
			continue
		}
		switch Classify(e.DepartureTime.In(now.Location()), view, now) {
		case BucketUpcoming:
			b.Upcoming = append(b.Upcoming, e)
		case BucketCompleted:
			b.Completed = append(b.Completed, e)
		}
	}

	sort.SliceStable(b.Upcoming, func(i, j int) bool {
		return b.Upcoming[i].DepartureTime.Before(b.Upcoming[j].DepartureTime)
	})
	sort.SliceStable(b.Completed, func(i, j int) bool {
		return b.Completed[i].DepartureTime.After(b.Completed[j].DepartureTime)
	})

	b.AllCompleted = len(b.Upcoming) == 0 && len(b.Completed) > 0
	return b
}
