package services

import (
	"context"
	"sync"
	"time"

	"focal/internal/infrastructure/logging"
	"focal/internal/platform"
	"focal/internal/types"
)

// UsageStore is the persistence surface the coordinator drives. The
// concrete implementation lives in the repository package.
type UsageStore interface {
	RecordSession(session *types.Session)
	CloseOpenSessions(ctx context.Context, at time.Time) (int64, error)
	Today(ctx context.Context, dayStart time.Time) *types.TodayAggregate
	Hourly(ctx context.Context, applicationID int64, dayStart time.Time) *types.HourlyBuckets
	CategoryTotals(ctx context.Context, since time.Time) []types.CategoryTotal
	TopApplications(ctx context.Context, since time.Time, limit int) []types.AppAggregate
}

// SnapshotPublisher receives every published snapshot. The app layer
// forwards these to the frontend as runtime events.
type SnapshotPublisher func(snapshot types.Snapshot)

const dispatchQueueDepth = 64

// ActivityCoordinator wires the focus watcher to the session ledger and
// the usage store. Watcher callbacks are re-dispatched onto one
// goroutine that owns all ledger state, so the state machine is never
// entered from two callbacks at once. Closed sessions flow to the store
// fire-and-forget; snapshot publication never touches the database.
type ActivityCoordinator struct {
	watcher *FocusWatcher
	ledger  *SessionLedger
	store   UsageStore
	config  TrackerConfig
	clock   Clock
	logger  logging.Logger
	publish SnapshotPublisher

	dispatch chan func()
	doneCh   chan struct{}

	startMu sync.Mutex
	started bool
	stopped bool

	// Dispatch-goroutine state
	idle bool

	snapshotMu sync.RWMutex
	snapshot   types.Snapshot
}

// NewActivityCoordinator creates a coordinator over the real scheduler
// and clock
func NewActivityCoordinator(api platform.WindowAPI, store UsageStore, config TrackerConfig, logger logging.Logger) *ActivityCoordinator {
	return NewActivityCoordinatorWithScheduler(api, store, config, SystemScheduler{}, SystemClock{}, logger)
}

// NewActivityCoordinatorWithScheduler creates a coordinator with an
// injected scheduler and clock so tests can advance virtual time
func NewActivityCoordinatorWithScheduler(api platform.WindowAPI, store UsageStore, config TrackerConfig, scheduler Scheduler, clock Clock, logger logging.Logger) *ActivityCoordinator {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	config = config.Normalize()

	c := &ActivityCoordinator{
		store:    store,
		config:   config,
		clock:    clock,
		logger:   logger,
		dispatch: make(chan func(), dispatchQueueDepth),
		doneCh:   make(chan struct{}),
	}
	c.ledger = NewSessionLedger(c, clock, logger)
	c.watcher = NewFocusWatcher(api, c, config, scheduler, logger)
	return c
}

// SetPublisher registers the snapshot publisher. Must be called before
// Start.
func (c *ActivityCoordinator) SetPublisher(publish SnapshotPublisher) {
	c.publish = publish
}

// Start recovers any session left open by a previous run, then starts
// the dispatch loop and the focus watcher. A failed recovery is logged
// and tracking starts anyway; a monitor with a stale row is better than
// no monitor.
func (c *ActivityCoordinator) Start(ctx context.Context) {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	if c.started {
		return
	}

	closed, err := c.store.CloseOpenSessions(ctx, c.clock.Now())
	if err != nil {
		logging.LogError(c.logger, err, "coordinator.Start", nil)
	} else if closed > 0 {
		c.logger.Info("Recovered open sessions from previous run", "count", closed)
	}

	c.started = true
	go c.run()
	c.watcher.Start()

	c.logger.Info("Activity tracking started",
		"idle_threshold", c.config.IdleThresholdSeconds,
		"day_start_hour", c.config.DayStartHour)
}

// Stop halts the watcher, closes the open session and drains the
// dispatch queue. After Stop returns no further store writes are
// issued. Idempotent.
func (c *ActivityCoordinator) Stop() {
	c.startMu.Lock()
	if !c.started || c.stopped {
		c.startMu.Unlock()
		return
	}
	c.stopped = true
	c.startMu.Unlock()

	// Watcher first: after this no callback can enqueue new work
	c.watcher.Stop()

	c.dispatch <- func() {
		c.ledger.EndCurrentSession()
	}
	close(c.dispatch)
	<-c.doneCh

	c.logger.Info("Activity tracking stopped")
}

func (c *ActivityCoordinator) run() {
	defer close(c.doneCh)
	for job := range c.dispatch {
		job()
	}
}

// submit enqueues a session-affecting job; these must never be dropped
func (c *ActivityCoordinator) submit(job func()) {
	c.dispatch <- job
}

// OnFocusChanged implements FocusListener. A focus change is always a
// session boundary.
func (c *ActivityCoordinator) OnFocusChanged(app platform.AppInfo, title string) {
	c.submit(func() {
		c.ledger.StartSession(app.Name, title)
		if c.idle {
			c.ledger.Pause()
		}
		c.publishSnapshot()
	})
}

// OnWindowTitleChanged implements FocusListener. The ledger decides
// whether the new title is a boundary.
func (c *ActivityCoordinator) OnWindowTitleChanged(title string) {
	c.submit(func() {
		c.ledger.UpdateTitle(title)
		if c.idle {
			c.ledger.Pause()
		}
		c.publishSnapshot()
	})
}

// OnIdleStateChanged implements FocusListener
func (c *ActivityCoordinator) OnIdleStateChanged(isIdle bool) {
	c.submit(func() {
		c.idle = isIdle
		if isIdle {
			c.ledger.Pause()
		} else {
			c.ledger.Resume()
		}
		c.publishSnapshot()
	})
}

// OnTick implements FocusListener. Ticks only refresh the published
// snapshot; when the queue is saturated a tick is dropped rather than
// ever blocking the watcher.
func (c *ActivityCoordinator) OnTick() {
	select {
	case c.dispatch <- func() { c.publishSnapshot() }:
	default:
	}
}

// publishSnapshot recomputes the published state from the ledger.
// Runs on the dispatch goroutine.
func (c *ActivityCoordinator) publishSnapshot() {
	snapshot := types.Snapshot{IsIdle: c.idle}
	if session := c.ledger.CurrentSession(); session != nil {
		snapshot.AppName = session.AppName
		snapshot.WindowTitle = session.WindowTitle
		snapshot.ElapsedTime = int64(c.clock.Now().Sub(session.StartTime) / time.Second)
	}

	c.snapshotMu.Lock()
	c.snapshot = snapshot
	c.snapshotMu.Unlock()

	if c.publish != nil {
		c.publish(snapshot)
	}
}

// Snapshot returns the last published snapshot
func (c *ActivityCoordinator) Snapshot() types.Snapshot {
	c.snapshotMu.RLock()
	defer c.snapshotMu.RUnlock()
	return c.snapshot
}

// RecordSession implements SessionSink by forwarding closed sessions to
// the store. The store's queue makes this non-blocking in practice.
func (c *ActivityCoordinator) RecordSession(session *types.Session) {
	c.store.RecordSession(session)
}

// Today returns per-application totals for the current logical day
func (c *ActivityCoordinator) Today(ctx context.Context) *types.TodayAggregate {
	return c.store.Today(ctx, c.config.DayStartFor(c.clock.Now()))
}

// Hourly returns hour-bucketed totals for one application on the
// current logical day
func (c *ActivityCoordinator) Hourly(ctx context.Context, applicationID int64) *types.HourlyBuckets {
	return c.store.Hourly(ctx, applicationID, c.config.DayStartFor(c.clock.Now()))
}

// CategoryTotals returns per-category totals for the trailing week,
// aligned to the logical day start
func (c *ActivityCoordinator) CategoryTotals(ctx context.Context) []types.CategoryTotal {
	weekStart := c.config.DayStartFor(c.clock.Now()).AddDate(0, 0, -6)
	return c.store.CategoryTotals(ctx, weekStart)
}

// TopApplications returns the top applications for the current logical
// day
func (c *ActivityCoordinator) TopApplications(ctx context.Context, limit int) []types.AppAggregate {
	return c.store.TopApplications(ctx, c.config.DayStartFor(c.clock.Now()), limit)
}
