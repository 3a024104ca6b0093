package services

import (
	"sync"

	"focal/internal/infrastructure/logging"
	"focal/internal/platform"
)

// FocusListener receives the watcher's signals. All callbacks are
// delivered from the watcher's own goroutine, one at a time, and never
// after Stop has returned.
type FocusListener interface {
	// OnFocusChanged fires immediately when the foreground application
	// changes. Always a session boundary, even if the name looks
	// unchanged, to guard against missed intermediate events. The title
	// is the best-effort title read at the moment of the switch.
	OnFocusChanged(app platform.AppInfo, title string)

	// OnWindowTitleChanged fires when the polled window title differs
	// from the last delivered value. Never fires for an empty or
	// unreadable title.
	OnWindowTitleChanged(title string)

	// OnIdleStateChanged fires once per idle transition, not every tick
	OnIdleStateChanged(isIdle bool)

	// OnTick fires every tick interval for UI elapsed-time refresh and
	// carries no session-affecting logic
	OnTick()
}

// FocusWatcher reconciles three differently-paced inputs into one
// callback stream: an instant OS focus-change subscription, a slow
// title and idle poll, and a fast UI tick. On platforms without a
// focus-change subscription it falls back to detecting application
// changes on the poll.
type FocusWatcher struct {
	api       platform.WindowAPI
	listener  FocusListener
	config    TrackerConfig
	scheduler Scheduler
	logger    logging.Logger

	mu          sync.Mutex
	started     bool
	stopCh      chan struct{}
	doneCh      chan struct{}
	unsubscribe func()

	// Loop-goroutine state, never touched elsewhere
	lastApp   string
	lastTitle string
	isIdle    bool
	hooked    bool
}

// NewFocusWatcher creates a watcher over the given platform API
func NewFocusWatcher(api platform.WindowAPI, listener FocusListener, config TrackerConfig, scheduler Scheduler, logger logging.Logger) *FocusWatcher {
	if scheduler == nil {
		scheduler = SystemScheduler{}
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &FocusWatcher{
		api:       api,
		listener:  listener,
		config:    config.Normalize(),
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start registers the OS focus subscription and arms the poll and tick
// timers. Safe to call repeatedly; a started watcher stays started.
func (fw *FocusWatcher) Start() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.started {
		return
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	focusEvents := make(chan platform.AppInfo, 16)

	unsubscribe, err := fw.api.WatchFocus(func(app platform.AppInfo) {
		// Invoked from an OS callback thread. The stop case keeps a
		// full queue from wedging the OS thread during shutdown.
		select {
		case focusEvents <- app:
		case <-stopCh:
		}
	})
	if err != nil {
		fw.logger.Warn("Focus subscription unavailable, falling back to polling", "error", err)
		unsubscribe = func() {}
		fw.hooked = false
	} else {
		fw.hooked = true
	}

	fw.stopCh = stopCh
	fw.doneCh = doneCh
	fw.unsubscribe = unsubscribe
	fw.started = true

	// Timers are armed before the goroutine launches so a tick can
	// never race watcher startup
	pollTicker := fw.scheduler.NewTicker(fw.config.PollInterval)
	tickTicker := fw.scheduler.NewTicker(fw.config.TickInterval)

	go fw.loop(focusEvents, pollTicker, tickTicker, stopCh, doneCh)

	fw.logger.Debug("Focus watcher started", "subscribed", fw.hooked)
}

// Stop unregisters the subscription, disarms both timers and waits for
// the delivery goroutine to exit. No callback fires after Stop returns,
// even one already scheduled. Idempotent.
func (fw *FocusWatcher) Stop() {
	fw.mu.Lock()
	if !fw.started {
		fw.mu.Unlock()
		return
	}
	fw.started = false
	fw.unsubscribe()
	close(fw.stopCh)
	doneCh := fw.doneCh
	fw.mu.Unlock()

	<-doneCh
}

func (fw *FocusWatcher) loop(focusEvents <-chan platform.AppInfo, pollTicker, tickTicker Ticker, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	defer pollTicker.Stop()
	defer tickTicker.Stop()

	for {
		select {
		case app := <-focusEvents:
			fw.handleFocusChange(app)
		case <-pollTicker.C():
			fw.poll()
		case <-tickTicker.C():
			fw.listener.OnTick()
		case <-stopCh:
			return
		}
	}
}

func (fw *FocusWatcher) handleFocusChange(app platform.AppInfo) {
	if app.Name == "" {
		return
	}

	title := fw.api.WindowTitle(app.PID)
	fw.lastApp = app.Name
	fw.lastTitle = title
	fw.listener.OnFocusChanged(app, title)
}

// poll re-samples the window title and idle time. An application that
// differs from the last known one is a focus change the subscription
// missed (or the whole fallback path when there is no subscription) and
// goes through handleFocusChange, never the title path, so a new app's
// title is never delivered against the old app's session. Title changes
// fire only on an actual non-empty difference; unreadable titles keep
// the previous value so a transient read failure never resets a session.
func (fw *FocusWatcher) poll() {
	app := fw.api.CurrentApp()
	if app != nil && app.Name != "" {
		if app.Name != fw.lastApp {
			fw.handleFocusChange(*app)
		} else if title := fw.api.WindowTitle(app.PID); title != "" && title != fw.lastTitle {
			fw.lastTitle = title
			fw.listener.OnWindowTitleChanged(title)
		}
	}

	fw.sampleIdle()
}

// sampleIdle compares idle time against the threshold and fires once
// per transition. An unavailable sample counts as active so idleness is
// never over-counted.
func (fw *FocusWatcher) sampleIdle() {
	idle := false
	if seconds, err := fw.api.IdleSeconds(); err == nil {
		idle = seconds >= float64(fw.config.IdleThresholdSeconds)
	}

	if idle != fw.isIdle {
		fw.isIdle = idle
		fw.listener.OnIdleStateChanged(idle)
	}
}
