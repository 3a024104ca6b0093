package platform

import "errors"

// ErrUnavailable indicates a platform query that could not be answered,
// e.g. idle time on a system without an idle monitor. Callers must
// substitute a safe default instead of failing.
var ErrUnavailable = errors.New("platform: query unavailable")

// AppInfo identifies the process owning the foreground window at the
// moment of observation.
type AppInfo struct {
	Name string `json:"name"`
	PID  uint32 `json:"pid"`
}

// WindowAPI defines the interface for platform-specific focus and idle
// operations. All reads are best-effort: implementations return zero
// values or ErrUnavailable rather than blocking or panicking.
type WindowAPI interface {
	// CurrentApp returns the process that owns the foreground window,
	// or nil when it cannot be determined.
	CurrentApp() *AppInfo

	// WindowTitle reads the current title of the foreground window
	// belonging to the given process. Returns "" when the title cannot
	// be read (window gone, insufficient permission).
	WindowTitle(pid uint32) string

	// IdleSeconds reports the time since the last human input.
	// Returns ErrUnavailable when the platform has no idle monitor.
	IdleSeconds() (float64, error)

	// WatchFocus registers cb to be invoked whenever the foreground
	// application changes, and returns a function that unregisters it.
	// cb may be invoked from an OS callback thread; it must not block.
	WatchFocus(cb func(AppInfo)) (func(), error)
}
