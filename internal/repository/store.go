package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"focal/internal/infrastructure/logging"
	"focal/internal/types"
)

// ErrStoreClosed is returned by store operations after Close
var ErrStoreClosed = errors.New("usage store is closed")

const (
	// defaultQueueDepth bounds the pending work queue. Submission blocks
	// when the queue is full, which preserves ordering under backpressure.
	defaultQueueDepth = 256

	// defaultCacheTTL is how long a computed today-aggregate stays fresh
	defaultCacheTTL = 2 * time.Second
)

// UsageStore serializes all persistence work through a single worker
// goroutine. Every operation, read or write, runs on that worker in
// strict submission order, so a read always observes every write
// submitted before it. Writes are fire-and-forget; reads block the
// caller until the worker replies.
type UsageStore struct {
	repo   UsageRepository
	logger logging.Logger

	jobs     chan func()
	workerWg sync.WaitGroup

	closeMu sync.Mutex
	closed  bool

	// Today-aggregate cache. One mutex guards the whole cache state and
	// results are swapped in atomically under it. The generation counter
	// keeps a read that raced a write from re-caching its stale result.
	cacheMu       sync.Mutex
	cacheTTL      time.Duration
	cacheGen      uint64
	cachedToday   *types.TodayAggregate
	cacheDayStart time.Time
	cachedAt      time.Time
}

// NewUsageStore creates a usage store over the given repository and
// starts its worker goroutine.
func NewUsageStore(repo UsageRepository, logger logging.Logger) *UsageStore {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	s := &UsageStore{
		repo:     repo,
		logger:   logger,
		jobs:     make(chan func(), defaultQueueDepth),
		cacheTTL: defaultCacheTTL,
	}

	s.workerWg.Add(1)
	go s.worker()

	return s
}

func (s *UsageStore) worker() {
	defer s.workerWg.Done()
	for job := range s.jobs {
		job()
	}
}

// submit enqueues a job on the worker. Returns ErrStoreClosed after Close.
func (s *UsageStore) submit(job func()) error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	// Blocking send keeps submission order intact under backpressure.
	// The lock is held across the send so Close cannot race the channel.
	s.jobs <- job
	return nil
}

// RecordSession submits a completed session for persistence and returns
// immediately. Failures are logged by the worker, never surfaced to the
// caller. The today-aggregate cache is invalidated at submission time,
// before the caller returns, so a read issued right after the write
// queues behind it instead of serving a stale cached aggregate.
func (s *UsageStore) RecordSession(session *types.Session) {
	err := s.submit(func() {
		if err := s.repo.RecordSession(context.Background(), session); err != nil {
			logging.LogError(s.logger, err, "store.RecordSession", nil)
		}
	})
	if err != nil {
		s.logger.Warn("Dropping session write, store is closed",
			"app", sessionApp(session))
		return
	}
	s.invalidateCache()
}

// DeleteOldData submits a retention sweep and returns immediately
func (s *UsageStore) DeleteOldData(olderThan time.Time) {
	err := s.submit(func() {
		if err := s.repo.DeleteOldData(context.Background(), olderThan); err != nil {
			logging.LogError(s.logger, err, "store.DeleteOldData", nil)
		}
	})
	if err != nil {
		s.logger.Warn("Dropping retention sweep, store is closed")
		return
	}
	s.invalidateCache()
}

// CloseOpenSessions runs startup recovery on the worker and waits for
// the result
func (s *UsageStore) CloseOpenSessions(ctx context.Context, at time.Time) (int64, error) {
	var closed int64
	err := s.run(ctx, func() error {
		var err error
		closed, err = s.repo.CloseOpenSessions(context.Background(), at)
		return err
	})
	return closed, err
}

// Today returns per-application totals for the logical day starting at
// dayStart. Results are cached briefly; a write invalidates the cache.
// Query failures are logged and produce an empty aggregate so the UI
// never sees an error, only missing data.
func (s *UsageStore) Today(ctx context.Context, dayStart time.Time) *types.TodayAggregate {
	cached, gen := s.cachedTodayFor(dayStart)
	if cached != nil {
		return cached
	}

	var result *types.TodayAggregate
	err := s.run(ctx, func() error {
		var err error
		result, err = s.repo.TodayAggregate(context.Background(), dayStart)
		return err
	})
	if err != nil {
		logging.LogError(s.logger, err, "store.Today", nil)
		return &types.TodayAggregate{DayStart: dayStart}
	}

	s.storeTodayCache(dayStart, result, gen)
	return result
}

// Hourly returns hour-bucketed active time for one application (or all
// applications when applicationID is zero). Failures are logged and
// produce empty buckets.
func (s *UsageStore) Hourly(ctx context.Context, applicationID int64, dayStart time.Time) *types.HourlyBuckets {
	var result *types.HourlyBuckets
	err := s.run(ctx, func() error {
		var err error
		result, err = s.repo.HourlyBuckets(context.Background(), applicationID, dayStart)
		return err
	})
	if err != nil {
		logging.LogError(s.logger, err, "store.Hourly", nil)
		return &types.HourlyBuckets{ApplicationID: applicationID, DayStart: dayStart}
	}
	return result
}

// CategoryTotals returns per-category active time since the cutoff.
// Failures are logged and produce an empty slice.
func (s *UsageStore) CategoryTotals(ctx context.Context, since time.Time) []types.CategoryTotal {
	var result []types.CategoryTotal
	err := s.run(ctx, func() error {
		var err error
		result, err = s.repo.CategoryTotals(context.Background(), since)
		return err
	})
	if err != nil {
		logging.LogError(s.logger, err, "store.CategoryTotals", nil)
		return []types.CategoryTotal{}
	}
	return result
}

// TopApplications returns the top applications by total time since the
// cutoff. Failures are logged and produce an empty slice.
func (s *UsageStore) TopApplications(ctx context.Context, since time.Time, limit int) []types.AppAggregate {
	var result []types.AppAggregate
	err := s.run(ctx, func() error {
		var err error
		result, err = s.repo.TopApplications(context.Background(), since, limit)
		return err
	})
	if err != nil {
		logging.LogError(s.logger, err, "store.TopApplications", nil)
		return []types.AppAggregate{}
	}
	return result
}

// ListApplications returns all tracked applications
func (s *UsageStore) ListApplications(ctx context.Context) []types.Application {
	var result []types.Application
	err := s.run(ctx, func() error {
		var err error
		result, err = s.repo.ListApplications(context.Background())
		return err
	})
	if err != nil {
		logging.LogError(s.logger, err, "store.ListApplications", nil)
		return []types.Application{}
	}
	return result
}

// ListCategories returns all categories
func (s *UsageStore) ListCategories(ctx context.Context) []types.Category {
	var result []types.Category
	err := s.run(ctx, func() error {
		var err error
		result, err = s.repo.ListCategories(context.Background())
		return err
	})
	if err != nil {
		logging.LogError(s.logger, err, "store.ListCategories", nil)
		return []types.Category{}
	}
	return result
}

// CreateCategory creates a category on the worker and waits for the result
func (s *UsageStore) CreateCategory(ctx context.Context, category *types.Category) error {
	return s.run(ctx, func() error {
		return s.repo.CreateCategory(context.Background(), category)
	})
}

// UpdateCategory updates a category on the worker and waits for the result
func (s *UsageStore) UpdateCategory(ctx context.Context, category *types.Category) error {
	return s.run(ctx, func() error {
		return s.repo.UpdateCategory(context.Background(), category)
	})
}

// DeleteCategory deletes a category on the worker and waits for the result
func (s *UsageStore) DeleteCategory(ctx context.Context, id string) error {
	return s.run(ctx, func() error {
		return s.repo.DeleteCategory(context.Background(), id)
	})
}

// AssignCategory links an application to a category on the worker.
// The cache is invalidated because category ids surface in aggregates.
func (s *UsageStore) AssignCategory(ctx context.Context, applicationID int64, categoryID string) error {
	err := s.run(ctx, func() error {
		return s.repo.AssignCategory(context.Background(), applicationID, categoryID)
	})
	if err == nil {
		s.invalidateCache()
	}
	return err
}

// Close drains the work queue and stops the worker. Pending writes are
// completed before Close returns. Operations submitted after Close are
// rejected.
func (s *UsageStore) Close() {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return
	}
	s.closed = true
	close(s.jobs)
	s.closeMu.Unlock()

	s.workerWg.Wait()
}

// run executes fn on the worker and waits for completion or context
// cancellation. The job still runs to completion on the worker even if
// the caller gives up waiting.
func (s *UsageStore) run(ctx context.Context, fn func() error) error {
	reply := make(chan error, 1)

	err := s.submit(func() {
		reply <- fn()
	})
	if err != nil {
		return err
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *UsageStore) cachedTodayFor(dayStart time.Time) (*types.TodayAggregate, uint64) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cachedToday == nil || !s.cacheDayStart.Equal(dayStart) {
		return nil, s.cacheGen
	}
	if time.Since(s.cachedAt) > s.cacheTTL {
		return nil, s.cacheGen
	}
	return s.cachedToday, s.cacheGen
}

// storeTodayCache installs a freshly computed aggregate unless a write
// invalidated the cache while the query was running.
func (s *UsageStore) storeTodayCache(dayStart time.Time, aggregate *types.TodayAggregate, gen uint64) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cacheGen != gen {
		return
	}
	s.cachedToday = aggregate
	s.cacheDayStart = dayStart
	s.cachedAt = time.Now()
}

func (s *UsageStore) invalidateCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cacheGen++
	s.cachedToday = nil
}

func sessionApp(session *types.Session) string {
	if session == nil {
		return ""
	}
	return session.AppName
}
