package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusboard/busboard/internal/domain"
	"github.com/campusboard/busboard/internal/repo"
)

// mockScheduleRepo is a hand-written test double for repo.ScheduleRepo.
// Each method is a function field; set only the ones your test needs.
type mockScheduleRepo struct {
	list        func(ctx context.Context) ([]domain.ScheduleEntry, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.ScheduleEntry, error)
	create      func(ctx context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error)
	update      func(ctx context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error)
	delete      func(ctx context.Context, id uuid.UUID) error
	deleteAll   func(ctx context.Context) (int64, error)
	insertBatch func(ctx context.Context, entries []domain.ScheduleEntry) (int64, error)
}

func (m *mockScheduleRepo) List(ctx context.Context) ([]domain.ScheduleEntry, error) {
	return m.list(ctx)
}
func (m *mockScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ScheduleEntry, error) {
	return m.getByID(ctx, id)
}
func (m *mockScheduleRepo) Create(ctx context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	return m.create(ctx, e)
}
func (m *mockScheduleRepo) Update(ctx context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	return m.update(ctx, e)
}
func (m *mockScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockScheduleRepo) DeleteAll(ctx context.Context) (int64, error) {
	return m.deleteAll(ctx)
}
func (m *mockScheduleRepo) InsertBatch(ctx context.Context, entries []domain.ScheduleEntry) (int64, error) {
	return m.insertBatch(ctx, entries)
}

var _ repo.ScheduleRepo = (*mockScheduleRepo)(nil)

// mockOptedInRepo is a hand-written test double for repo.OptedInRepo.
type mockOptedInRepo struct {
	insertMissing func(ctx context.Context, emails []string) (int64, error)
	list          func(ctx context.Context) ([]domain.OptedInEmail, error)
}

func (m *mockOptedInRepo) InsertMissing(ctx context.Context, emails []string) (int64, error) {
	return m.insertMissing(ctx, emails)
}
func (m *mockOptedInRepo) List(ctx context.Context) ([]domain.OptedInEmail, error) {
	return m.list(ctx)
}

var _ repo.OptedInRepo = (*mockOptedInRepo)(nil)

// mockTxManager runs fn directly against the configured repos.
type mockTxManager struct {
	repos repo.TxRepos
	err   error // returned instead of running fn when set
	calls int
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repo.TxRepos) error) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return fn(ctx, m.repos)
}

var _ repo.TxManager = (*mockTxManager)(nil)

// memStore is an in-memory schedule table with snapshot transactions,
// used by the end-to-end upload and gate scenarios.
type memStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.ScheduleEntry

	failInsert error // makes InsertBatch fail inside a transaction
}

func newMemStore(seed ...domain.ScheduleEntry) *memStore {
	s := &memStore{rows: map[uuid.UUID]domain.ScheduleEntry{}}
	for _, e := range seed {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		s.rows[e.ID] = e
	}
	return s
}

func (s *memStore) snapshot() []domain.ScheduleEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedRows(s.rows)
}

func sortedRows(rows map[uuid.UUID]domain.ScheduleEntry) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, 0, len(rows))
	for _, e := range rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out
}

// repo returns a ScheduleRepo that writes straight to the committed table.
func (s *memStore) repo() repo.ScheduleRepo {
	return &memScheduleRepo{store: s}
}

func (s *memStore) WithTx(ctx context.Context, fn func(ctx context.Context, repos repo.TxRepos) error) error {
	s.mu.Lock()
	working := make(map[uuid.UUID]domain.ScheduleEntry, len(s.rows))
	for k, v := range s.rows {
		working[k] = v
	}
	s.mu.Unlock()

	txRepo := &memScheduleRepo{store: s, rows: working, inTx: true}
	if err := fn(ctx, repo.TxRepos{Schedules: txRepo}); err != nil {
		return err
	}

	s.mu.Lock()
	s.rows = working
	s.mu.Unlock()
	return nil
}

var _ repo.TxManager = (*memStore)(nil)

type memScheduleRepo struct {
	store *memStore
	rows  map[uuid.UUID]domain.ScheduleEntry
	inTx  bool
}

func (r *memScheduleRepo) table() map[uuid.UUID]domain.ScheduleEntry {
	if r.inTx {
		return r.rows
	}
	return r.store.rows
}

func (r *memScheduleRepo) List(context.Context) ([]domain.ScheduleEntry, error) {
	return sortedRows(r.table()), nil
}

func (r *memScheduleRepo) GetByID(_ context.Context, id uuid.UUID) (domain.ScheduleEntry, error) {
	e, ok := r.table()[id]
	if !ok {
		return domain.ScheduleEntry{}, domain.ErrNotFound
	}
	return e, nil
}

func (r *memScheduleRepo) Create(_ context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.ModifiedAt = e.CreatedAt
	r.table()[e.ID] = e
	return e, nil
}

func (r *memScheduleRepo) Update(_ context.Context, e domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	if _, ok := r.table()[e.ID]; !ok {
		return domain.ScheduleEntry{}, domain.ErrNotFound
	}
	e.ModifiedAt = time.Now()
	r.table()[e.ID] = e
	return e, nil
}

func (r *memScheduleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.table()[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.table(), id)
	return nil
}

func (r *memScheduleRepo) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.table()))
	for id := range r.table() {
		delete(r.table(), id)
	}
	return n, nil
}

func (r *memScheduleRepo) InsertBatch(_ context.Context, entries []domain.ScheduleEntry) (int64, error) {
	if r.store.failInsert != nil {
		return 0, r.store.failInsert
	}
	for _, e := range entries {
		e.ID = uuid.New()
		r.table()[e.ID] = e
	}
	return int64(len(entries)), nil
}

var _ repo.ScheduleRepo = (*memScheduleRepo)(nil)
