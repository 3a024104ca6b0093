package services

import (
	"time"

	"focal/internal/infrastructure/logging"
	"focal/internal/types"
)

// LedgerState is the session state machine's current state
type LedgerState int

const (
	// LedgerIdle means no session is open
	LedgerIdle LedgerState = iota
	// LedgerActive means a session is open and accumulating active time
	LedgerActive
	// LedgerPaused means a session is open and accumulating passive time
	LedgerPaused
)

func (s LedgerState) String() string {
	switch s {
	case LedgerIdle:
		return "idle"
	case LedgerActive:
		return "active"
	case LedgerPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// SessionSink receives every closed session. The coordinator implements
// this by forwarding to the usage store.
type SessionSink interface {
	RecordSession(session *types.Session)
}

// SessionLedger owns the single open session and transitions it across
// Idle, Active and Paused. It has no internal locking: all transitions
// must run on the coordinator's dispatch goroutine.
type SessionLedger struct {
	clock  Clock
	sink   SessionSink
	logger logging.Logger

	state      LedgerState
	current    *types.Session
	pauseStart time.Time
	passive    time.Duration
}

// NewSessionLedger creates a ledger that reports closed sessions to sink
func NewSessionLedger(sink SessionSink, clock Clock, logger logging.Logger) *SessionLedger {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &SessionLedger{
		clock:  clock,
		sink:   sink,
		logger: logger,
		state:  LedgerIdle,
	}
}

// State returns the current state machine state
func (l *SessionLedger) State() LedgerState {
	return l.state
}

// CurrentSession returns a copy of the open session, or nil when idle
func (l *SessionLedger) CurrentSession() *types.Session {
	if l.current == nil {
		return nil
	}
	session := *l.current
	return &session
}

// StartSession opens a new session for the given application and window
// title. Any session still open is closed first; there is never more
// than one open session.
func (l *SessionLedger) StartSession(appName, windowTitle string) {
	if appName == "" {
		return
	}

	l.EndCurrentSession()

	l.current = &types.Session{
		AppName:     appName,
		WindowTitle: windowTitle,
		StartTime:   l.clock.Now(),
	}
	l.state = LedgerActive
	l.passive = 0
	l.pauseStart = time.Time{}

	l.logger.Debug("Session started", "app", appName, "title", windowTitle)
}

// Pause marks the open session as accumulating passive time. Calling
// Pause while already paused, or with no open session, is a no-op.
func (l *SessionLedger) Pause() {
	if l.state != LedgerActive {
		return
	}
	l.pauseStart = l.clock.Now()
	l.state = LedgerPaused
}

// Resume folds the finished pause segment into the accumulated passive
// duration. Calling Resume while already active, or with no open
// session, is a no-op.
func (l *SessionLedger) Resume() {
	if l.state != LedgerPaused {
		return
	}
	l.passive += l.clock.Now().Sub(l.pauseStart)
	l.pauseStart = time.Time{}
	l.state = LedgerActive
}

// EndCurrentSession closes the open session, computes its final active
// and passive durations and hands it to the sink. Active time is the
// elapsed wall time minus everything spent paused. A no-op when idle.
func (l *SessionLedger) EndCurrentSession() {
	if l.state == LedgerIdle || l.current == nil {
		return
	}

	now := l.clock.Now()

	passive := l.passive
	if l.state == LedgerPaused {
		passive += now.Sub(l.pauseStart)
	}

	elapsed := now.Sub(l.current.StartTime)
	active := elapsed - passive
	if active < 0 {
		active = 0
	}
	if passive < 0 {
		passive = 0
	}

	session := l.current
	session.EndTime = now
	session.ActiveDuration = int64(active / time.Second)
	session.PassiveDuration = int64(passive / time.Second)

	l.current = nil
	l.state = LedgerIdle
	l.passive = 0
	l.pauseStart = time.Time{}

	l.logger.Debug("Session ended",
		"app", session.AppName,
		"active", session.ActiveDuration,
		"passive", session.PassiveDuration)

	if l.sink != nil {
		l.sink.RecordSession(session)
	}
}

// UpdateTitle applies a window-title change to the open session. A
// non-empty title that differs from the session's current title is a
// session boundary: the session is closed and a new one opened for the
// same application. Empty or unchanged titles do nothing.
func (l *SessionLedger) UpdateTitle(title string) {
	if l.current == nil || title == "" || title == l.current.WindowTitle {
		return
	}
	appName := l.current.AppName
	l.StartSession(appName, title)
}
