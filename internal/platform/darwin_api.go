//go:build darwin

package platform

// DarwinAPI implements WindowAPI for macOS.
type DarwinAPI struct{}

// NewDarwinAPI creates a new macOS API instance
func NewDarwinAPI() *DarwinAPI {
	return &DarwinAPI{}
}

// NewWindowAPI creates a new WindowAPI instance for macOS
func NewWindowAPI() WindowAPI {
	return NewDarwinAPI()
}

// CurrentApp gets the currently active application on macOS
func (d *DarwinAPI) CurrentApp() *AppInfo {
	// TODO: Implement using NSWorkspace.frontmostApplication via cgo
	return nil
}

// WindowTitle reads the focused window title on macOS
func (d *DarwinAPI) WindowTitle(pid uint32) string {
	// TODO: Implement using CGWindowListCopyWindowInfo (requires the
	// screen-recording permission for titles)
	return ""
}

// IdleSeconds reports seconds since last input on macOS
func (d *DarwinAPI) IdleSeconds() (float64, error) {
	// TODO: Implement using CGEventSourceSecondsSinceLastEventType
	return 0, ErrUnavailable
}

// WatchFocus subscribes to focus changes on macOS
func (d *DarwinAPI) WatchFocus(cb func(AppInfo)) (func(), error) {
	// TODO: Implement using NSWorkspace didActivateApplicationNotification
	return nil, ErrUnavailable
}
