package services

import (
	"context"
	"sync"
	"time"

	"focal/internal/platform"
	"focal/internal/types"
)

// manualClock is a settable clock for virtual-time tests
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock(start time.Time) *manualClock {
	return &manualClock{now: start}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// manualScheduler hands out tickers that only fire when told to
type manualScheduler struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (s *manualScheduler) NewTicker(d time.Duration) Ticker {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTicker{interval: d, ch: make(chan time.Time, 1)}
	s.tickers = append(s.tickers, t)
	return t
}

// Fire delivers a tick to every ticker created with the given interval
func (s *manualScheduler) Fire(d time.Duration, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickers {
		if t.interval == d && !t.isStopped() {
			t.ch <- now
		}
	}
}

func (s *manualScheduler) stoppedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.tickers {
		if t.isStopped() {
			count++
		}
	}
	return count
}

type manualTicker struct {
	interval time.Duration
	ch       chan time.Time

	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time {
	return t.ch
}

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// fakeWindowAPI is a scriptable platform API
type fakeWindowAPI struct {
	mu            sync.Mutex
	app           *platform.AppInfo
	title         string
	idleSeconds   float64
	idleErr       error
	watchErr      error
	focusCallback func(platform.AppInfo)
	unsubscribed  int
}

func (f *fakeWindowAPI) setApp(name string, pid uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.app = &platform.AppInfo{Name: name, PID: pid}
}

func (f *fakeWindowAPI) setTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
}

func (f *fakeWindowAPI) setIdle(seconds float64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idleSeconds = seconds
	f.idleErr = err
}

func (f *fakeWindowAPI) CurrentApp() *platform.AppInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.app == nil {
		return nil
	}
	app := *f.app
	return &app
}

func (f *fakeWindowAPI) WindowTitle(pid uint32) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title
}

func (f *fakeWindowAPI) IdleSeconds() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idleErr != nil {
		return 0, f.idleErr
	}
	return f.idleSeconds, nil
}

func (f *fakeWindowAPI) WatchFocus(cb func(platform.AppInfo)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	f.focusCallback = cb
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubscribed++
	}, nil
}

// emitFocus invokes the registered focus callback the way the OS would
func (f *fakeWindowAPI) emitFocus(name string, pid uint32) {
	f.mu.Lock()
	cb := f.focusCallback
	f.mu.Unlock()
	if cb != nil {
		cb(platform.AppInfo{Name: name, PID: pid})
	}
}

// recordingListener counts every callback and signals deliveries
type recordingListener struct {
	mu          sync.Mutex
	focusEvents []string
	focusTitles []string
	titleEvents []string
	idleEvents  []bool
	tickCount   int
	delivered   chan struct{}
}

func newRecordingListener() *recordingListener {
	return &recordingListener{delivered: make(chan struct{}, 64)}
}

func (r *recordingListener) OnFocusChanged(app platform.AppInfo, title string) {
	r.mu.Lock()
	r.focusEvents = append(r.focusEvents, app.Name)
	r.focusTitles = append(r.focusTitles, title)
	r.mu.Unlock()
	r.delivered <- struct{}{}
}

func (r *recordingListener) OnWindowTitleChanged(title string) {
	r.mu.Lock()
	r.titleEvents = append(r.titleEvents, title)
	r.mu.Unlock()
	r.delivered <- struct{}{}
}

func (r *recordingListener) OnIdleStateChanged(isIdle bool) {
	r.mu.Lock()
	r.idleEvents = append(r.idleEvents, isIdle)
	r.mu.Unlock()
	r.delivered <- struct{}{}
}

func (r *recordingListener) OnTick() {
	r.mu.Lock()
	r.tickCount++
	r.mu.Unlock()
	r.delivered <- struct{}{}
}

func (r *recordingListener) counts() (focus, title, idle, tick int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.focusEvents), len(r.titleEvents), len(r.idleEvents), r.tickCount
}

// recordingSink collects closed sessions from the ledger
type recordingSink struct {
	mu       sync.Mutex
	sessions []*types.Session
}

func (r *recordingSink) RecordSession(session *types.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, session)
}

func (r *recordingSink) recorded() []*types.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*types.Session(nil), r.sessions...)
}

// fakeStore implements the coordinator's UsageStore surface in memory
type fakeStore struct {
	mu             sync.Mutex
	sessions       []*types.Session
	recoveredCalls int
}

func (f *fakeStore) RecordSession(session *types.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, session)
}

func (f *fakeStore) CloseOpenSessions(ctx context.Context, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recoveredCalls++
	return 0, nil
}

func (f *fakeStore) Today(ctx context.Context, dayStart time.Time) *types.TodayAggregate {
	return &types.TodayAggregate{DayStart: dayStart}
}

func (f *fakeStore) Hourly(ctx context.Context, applicationID int64, dayStart time.Time) *types.HourlyBuckets {
	return &types.HourlyBuckets{ApplicationID: applicationID, DayStart: dayStart}
}

func (f *fakeStore) CategoryTotals(ctx context.Context, since time.Time) []types.CategoryTotal {
	return nil
}

func (f *fakeStore) TopApplications(ctx context.Context, since time.Time, limit int) []types.AppAggregate {
	return nil
}

func (f *fakeStore) recorded() []*types.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.Session(nil), f.sessions...)
}
