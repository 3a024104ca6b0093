package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	storeerrors "focal/internal/infrastructure/errors"
	"focal/internal/testutils"
	"focal/internal/types"
)

// fakeRepo is an in-memory UsageRepository that records calls and can
// be told to fail. All methods are safe for the store's worker to call
// concurrently with test assertions.
type fakeRepo struct {
	mu sync.Mutex

	sessions       []*types.Session
	todayCalls     int
	deleteOldCalls int
	failWith       error
}

func (f *fakeRepo) setFailure(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = err
}

func (f *fakeRepo) sessionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

func (f *fakeRepo) todayCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.todayCalls
}

func (f *fakeRepo) RecordSession(ctx context.Context, session *types.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeRepo) CloseOpenSessions(ctx context.Context, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	return 3, nil
}

func (f *fakeRepo) TodayAggregate(ctx context.Context, dayStart time.Time) (*types.TodayAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.todayCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}

	byApp := make(map[string]*types.AppAggregate)
	var order []string
	for _, s := range f.sessions {
		agg, ok := byApp[s.AppName]
		if !ok {
			agg = &types.AppAggregate{AppName: s.AppName}
			byApp[s.AppName] = agg
			order = append(order, s.AppName)
		}
		agg.ActiveTime += s.ActiveDuration
		agg.PassiveTime += s.PassiveDuration
		agg.SessionCount++
	}

	result := &types.TodayAggregate{DayStart: dayStart}
	for _, name := range order {
		result.Apps = append(result.Apps, *byApp[name])
	}
	return result, nil
}

func (f *fakeRepo) HourlyBuckets(ctx context.Context, applicationID int64, dayStart time.Time) (*types.HourlyBuckets, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	buckets := &types.HourlyBuckets{ApplicationID: applicationID, DayStart: dayStart}
	buckets.Buckets[0] = 42
	return buckets, nil
}

func (f *fakeRepo) CategoryTotals(ctx context.Context, since time.Time) ([]types.CategoryTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return []types.CategoryTotal{{CategoryID: "work", ActiveTime: 100}}, nil
}

func (f *fakeRepo) TopApplications(ctx context.Context, since time.Time, limit int) ([]types.AppAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return []types.AppAggregate{{AppName: "firefox"}}, nil
}

func (f *fakeRepo) ListApplications(ctx context.Context) ([]types.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return []types.Application{{ID: 1, Name: "firefox"}}, nil
}

func (f *fakeRepo) AssignCategory(ctx context.Context, applicationID int64, categoryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWith
}

func (f *fakeRepo) ListCategories(ctx context.Context) ([]types.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return []types.Category{{ID: "work", Name: "Work"}}, nil
}

func (f *fakeRepo) CreateCategory(ctx context.Context, category *types.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWith
}

func (f *fakeRepo) UpdateCategory(ctx context.Context, category *types.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWith
}

func (f *fakeRepo) DeleteCategory(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWith
}

func (f *fakeRepo) DeleteOldData(ctx context.Context, olderThan time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.deleteOldCalls++
	return nil
}

func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(repo UsageRepository) error) error {
	return fn(f)
}

func newTestStore(t *testing.T) (*UsageStore, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{}
	store := NewUsageStore(repo, testutils.NewCaptureLogger())
	t.Cleanup(store.Close)
	return store, repo
}

func storeSession(app string, active, passive int64) *types.Session {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &types.Session{
		AppName:         app,
		StartTime:       start,
		EndTime:         start.Add(time.Minute),
		ActiveDuration:  active,
		PassiveDuration: passive,
	}
}

func TestUsageStore_ReadObservesPriorWrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Fire-and-forget writes followed immediately by a read. The read
	// runs on the same worker, behind the writes, so it must see them.
	store.RecordSession(storeSession("firefox", 100, 0))
	store.RecordSession(storeSession("firefox", 50, 25))

	aggregate := store.Today(ctx, dayStart)
	if len(aggregate.Apps) != 1 {
		t.Fatalf("Expected 1 application in aggregate, got %d", len(aggregate.Apps))
	}
	if aggregate.Apps[0].ActiveTime != 150 {
		t.Errorf("Expected read to observe both writes (150s active), got %d", aggregate.Apps[0].ActiveTime)
	}
	if aggregate.Apps[0].PassiveTime != 25 {
		t.Errorf("Expected 25s passive, got %d", aggregate.Apps[0].PassiveTime)
	}
}

func TestUsageStore_TodayCacheServesRepeatReads(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	store.Today(ctx, dayStart)
	store.Today(ctx, dayStart)
	store.Today(ctx, dayStart)

	if calls := repo.todayCallCount(); calls != 1 {
		t.Errorf("Expected 1 repository query for repeated reads, got %d", calls)
	}
}

func TestUsageStore_WriteInvalidatesTodayCache(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	first := store.Today(ctx, dayStart)
	if len(first.Apps) != 0 {
		t.Fatalf("Expected empty aggregate before writes, got %d apps", len(first.Apps))
	}

	store.RecordSession(storeSession("firefox", 60, 0))

	second := store.Today(ctx, dayStart)
	if len(second.Apps) != 1 {
		t.Fatalf("Expected aggregate to reflect the new session, got %d apps", len(second.Apps))
	}
	if calls := repo.todayCallCount(); calls != 2 {
		t.Errorf("Expected cache invalidation to force a second query, got %d calls", calls)
	}
}

func TestUsageStore_DifferentDayStartBypassesCache(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	store.Today(ctx, dayStart)
	store.Today(ctx, dayStart.Add(4*time.Hour))

	if calls := repo.todayCallCount(); calls != 2 {
		t.Errorf("Expected a fresh query for a different day start, got %d calls", calls)
	}
}

func TestUsageStore_QueryFailuresProduceEmptyResults(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	repo.setFailure(storeerrors.NewStoreError("query", fmt.Errorf("disk exploded"), storeerrors.ErrCodeInternal))

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	today := store.Today(ctx, dayStart)
	if today == nil || len(today.Apps) != 0 {
		t.Errorf("Expected empty aggregate on failure, got %+v", today)
	}
	if !today.DayStart.Equal(dayStart) {
		t.Errorf("Expected empty aggregate to keep the requested day start")
	}

	hourly := store.Hourly(ctx, 1, dayStart)
	if hourly == nil || hourly.Buckets != [24]int64{} {
		t.Errorf("Expected empty buckets on failure, got %+v", hourly)
	}

	if totals := store.CategoryTotals(ctx, dayStart); len(totals) != 0 {
		t.Errorf("Expected empty category totals on failure, got %d", len(totals))
	}
	if top := store.TopApplications(ctx, dayStart, 5); len(top) != 0 {
		t.Errorf("Expected empty top applications on failure, got %d", len(top))
	}
	if apps := store.ListApplications(ctx); len(apps) != 0 {
		t.Errorf("Expected empty application list on failure, got %d", len(apps))
	}
	if categories := store.ListCategories(ctx); len(categories) != 0 {
		t.Errorf("Expected empty category list on failure, got %d", len(categories))
	}
}

func TestUsageStore_FailedTodayIsNotCached(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	repo.setFailure(fmt.Errorf("transient"))
	store.Today(ctx, dayStart)

	repo.setFailure(nil)
	store.Today(ctx, dayStart)

	if calls := repo.todayCallCount(); calls != 2 {
		t.Errorf("Expected failed read to stay uncached, got %d calls", calls)
	}
}

func TestUsageStore_WriteFailureIsSwallowed(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	repo.setFailure(fmt.Errorf("insert failed"))
	store.RecordSession(storeSession("firefox", 60, 0))
	// Drain the queue behind the failed write while the failure is still armed
	store.ListApplications(ctx)
	repo.setFailure(nil)

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	aggregate := store.Today(ctx, dayStart)
	if len(aggregate.Apps) != 0 {
		t.Errorf("Expected the failed write to be dropped, got %d apps", len(aggregate.Apps))
	}
}

func TestUsageStore_CategoryErrorsSurfaceToCaller(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	failure := storeerrors.NewStoreError("CreateCategory", fmt.Errorf("duplicate"), storeerrors.ErrCodeDuplicate)
	repo.setFailure(failure)

	if err := store.CreateCategory(ctx, &types.Category{ID: "work"}); !storeerrors.IsDuplicate(err) {
		t.Errorf("Expected duplicate error from CreateCategory, got %v", err)
	}
	if err := store.DeleteCategory(ctx, "work"); err == nil {
		t.Error("Expected DeleteCategory to surface the repository error")
	}
}

func TestUsageStore_CloseOpenSessions(t *testing.T) {
	store, _ := newTestStore(t)

	closed, err := store.CloseOpenSessions(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("CloseOpenSessions failed: %v", err)
	}
	if closed != 3 {
		t.Errorf("Expected 3 closed sessions, got %d", closed)
	}
}

func TestUsageStore_CloseDrainsPendingWrites(t *testing.T) {
	repo := &fakeRepo{}
	store := NewUsageStore(repo, testutils.NewCaptureLogger())

	for i := 0; i < 20; i++ {
		store.RecordSession(storeSession("firefox", 10, 0))
	}
	store.Close()

	if count := repo.sessionCount(); count != 20 {
		t.Errorf("Expected all 20 pending writes to land before Close returned, got %d", count)
	}
}

func TestUsageStore_OperationsAfterCloseAreRejected(t *testing.T) {
	repo := &fakeRepo{}
	store := NewUsageStore(repo, testutils.NewCaptureLogger())
	store.Close()

	// Writes are dropped silently, synchronous calls report the closure
	store.RecordSession(storeSession("firefox", 10, 0))
	if count := repo.sessionCount(); count != 0 {
		t.Errorf("Expected write after Close to be dropped, got %d sessions", count)
	}

	if _, err := store.CloseOpenSessions(context.Background(), time.Now()); err != ErrStoreClosed {
		t.Errorf("Expected ErrStoreClosed, got %v", err)
	}
	if err := store.CreateCategory(context.Background(), &types.Category{ID: "work"}); err != ErrStoreClosed {
		t.Errorf("Expected ErrStoreClosed, got %v", err)
	}

	// Close is idempotent
	store.Close()
}

func TestUsageStore_DeleteOldDataRuns(t *testing.T) {
	store, repo := newTestStore(t)

	store.DeleteOldData(time.Now().AddDate(0, 0, -365))

	// Drain the queue so the sweep has run
	store.ListCategories(context.Background())

	repo.mu.Lock()
	calls := repo.deleteOldCalls
	repo.mu.Unlock()
	if calls != 1 {
		t.Errorf("Expected 1 retention sweep, got %d", calls)
	}
}
