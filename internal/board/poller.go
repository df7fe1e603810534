package board

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/campusboard/busboard/internal/domain"
)

// DefaultInterval is how often the dashboard re-fetches the schedule.
const DefaultInterval = 30 * time.Second

// Fetcher returns the full schedule.
type Fetcher interface {
	FetchSchedule(ctx context.Context) ([]domain.ScheduleEntry, error)
}

// Snapshot is the last schedule the poller saw.
type Snapshot struct {
	Entries   []domain.ScheduleEntry
	FetchedAt time.Time
	// Err is the most recent fetch failure. Entries keep the last good data.
	Err error
}

// Poller re-fetches the schedule on a fixed interval and replaces its state
// wholesale after every successful fetch.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	log      *slog.Logger
	now      func() time.Time

	// OnUpdate, when set, is called after every poll with the new snapshot.
	OnUpdate func(Snapshot)

	mu    sync.RWMutex
	state Snapshot
}

// NewPoller returns a Poller. A non-positive interval selects DefaultInterval
// and a nil log selects slog.Default.
func NewPoller(f Fetcher, interval time.Duration, log *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Poller{
		fetcher:  f,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled. The first fetch happens immediately.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Snapshot returns a copy of the current state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.state
	s.Entries = append([]domain.ScheduleEntry(nil), p.state.Entries...)
	return s
}

func (p *Poller) poll(ctx context.Context) {
	entries, err := p.fetcher.FetchSchedule(ctx)
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	if err != nil {
		p.log.Warn("schedule fetch failed", "error", err)
		p.state.Err = err
	} else {
		p.state = Snapshot{Entries: entries, FetchedAt: p.now()}
	}
	p.mu.Unlock()

	if p.OnUpdate != nil {
		p.OnUpdate(p.Snapshot())
	}
}
