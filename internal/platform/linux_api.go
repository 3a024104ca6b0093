//go:build linux

package platform

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	focusedWindowDest   = "org.gnome.Shell"
	focusedWindowPath   = dbus.ObjectPath("/org/gnome/shell/extensions/FocusedWindow")
	focusedWindowMethod = "org.gnome.shell.extensions.FocusedWindow.Get"

	idleMonitorDest   = "org.gnome.Mutter.IdleMonitor"
	idleMonitorPath   = dbus.ObjectPath("/org/gnome/Mutter/IdleMonitor/Core")
	idleMonitorMethod = "org.gnome.Mutter.IdleMonitor.GetIdletime"

	// GNOME exposes no focus-change signal to unprivileged callers, so
	// WatchFocus falls back to polling the FocusedWindow extension.
	focusPollInterval = 500 * time.Millisecond
)

// mutterWindow mirrors the JSON payload returned by the FocusedWindow
// GNOME Shell extension.
type mutterWindow struct {
	Title   string `json:"title"`
	WmClass string `json:"wm_class"`
	PID     uint32 `json:"pid"`
}

// LinuxAPI implements WindowAPI for GNOME/Mutter sessions via D-Bus.
type LinuxAPI struct {
	mu   sync.Mutex
	conn *dbus.Conn
}

// NewLinuxAPI creates a new Linux API instance
func NewLinuxAPI() *LinuxAPI {
	return &LinuxAPI{}
}

// NewWindowAPI creates a new WindowAPI instance for Linux
func NewWindowAPI() WindowAPI {
	return NewLinuxAPI()
}

// bus returns the shared session-bus connection, dialing it on first use.
func (l *LinuxAPI) bus() (*dbus.Conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		return l.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	l.conn = conn
	return conn, nil
}

// focusedWindow calls the FocusedWindow extension and decodes its reply.
func (l *LinuxAPI) focusedWindow() (*mutterWindow, error) {
	conn, err := l.bus()
	if err != nil {
		return nil, err
	}

	var jsonStr string
	obj := conn.Object(focusedWindowDest, focusedWindowPath)
	if err := obj.Call(focusedWindowMethod, 0).Store(&jsonStr); err != nil {
		return nil, err
	}

	var window mutterWindow
	if err := json.Unmarshal([]byte(jsonStr), &window); err != nil {
		return nil, err
	}
	return &window, nil
}

// CurrentApp returns the WmClass of the focused window as the process
// identity, or nil when the extension is unreachable.
func (l *LinuxAPI) CurrentApp() *AppInfo {
	window, err := l.focusedWindow()
	if err != nil || window.WmClass == "" {
		return nil
	}
	return &AppInfo{Name: window.WmClass, PID: window.PID}
}

// WindowTitle reads the focused window's title, "" on any failure.
func (l *LinuxAPI) WindowTitle(pid uint32) string {
	window, err := l.focusedWindow()
	if err != nil {
		return ""
	}
	if pid != 0 && window.PID != 0 && window.PID != pid {
		return ""
	}
	return window.Title
}

// IdleSeconds queries Mutter's IdleMonitor, which reports milliseconds
// since the last human input.
func (l *LinuxAPI) IdleSeconds() (float64, error) {
	conn, err := l.bus()
	if err != nil {
		return 0, ErrUnavailable
	}

	var idleMs uint64
	obj := conn.Object(idleMonitorDest, idleMonitorPath)
	if err := obj.Call(idleMonitorMethod, 0).Store(&idleMs); err != nil {
		return 0, ErrUnavailable
	}
	return float64(idleMs) / 1000.0, nil
}

// WatchFocus emulates a focus-change event stream by polling the
// FocusedWindow extension and invoking cb when the WmClass changes.
func (l *LinuxAPI) WatchFocus(cb func(AppInfo)) (func(), error) {
	// Fail fast when the extension is not installed.
	if _, err := l.focusedWindow(); err != nil {
		return nil, err
	}

	stop := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(focusPollInterval)
		defer ticker.Stop()

		var lastClass string
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				window, err := l.focusedWindow()
				if err != nil || window.WmClass == "" {
					continue
				}
				if window.WmClass != lastClass {
					lastClass = window.WmClass
					cb(AppInfo{Name: window.WmClass, PID: window.PID})
				}
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}, nil
}
