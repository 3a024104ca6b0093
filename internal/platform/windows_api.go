//go:build windows

package platform

import (
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	kernel32                     = windows.NewLazySystemDLL("kernel32.dll")
	psapi                        = windows.NewLazySystemDLL("psapi.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetLastInputInfo         = user32.NewProc("GetLastInputInfo")
	procSetWinEventHook          = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent           = user32.NewProc("UnhookWinEvent")
	procGetMessageW              = user32.NewProc("GetMessageW")
	procPostThreadMessageW       = user32.NewProc("PostThreadMessageW")
	procOpenProcess              = kernel32.NewProc("OpenProcess")
	procCloseHandle              = kernel32.NewProc("CloseHandle")
	procGetTickCount             = kernel32.NewProc("GetTickCount")
	procGetCurrentThreadId       = kernel32.NewProc("GetCurrentThreadId")
	procGetModuleFileNameExW     = psapi.NewProc("GetModuleFileNameExW")
)

const (
	eventSystemForeground = 0x0003
	wineventOutofcontext  = 0x0000
	wmQuit                = 0x0012

	processQueryInformation = 0x0400
	processVMRead           = 0x0010
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	ptX     int32
	ptY     int32
}

// WindowsAPI implements WindowAPI for the Windows platform.
type WindowsAPI struct{}

// NewWindowsAPI creates a new Windows API instance
func NewWindowsAPI() *WindowsAPI {
	return &WindowsAPI{}
}

// NewWindowAPI creates a new WindowAPI instance for Windows
func NewWindowAPI() WindowAPI {
	return NewWindowsAPI()
}

// CurrentApp resolves the process owning the foreground window.
func (w *WindowsAPI) CurrentApp() *AppInfo {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return nil
	}

	var processID uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&processID)))
	if processID == 0 {
		return nil
	}

	name := processName(processID)
	if name == "" {
		return nil
	}

	return &AppInfo{Name: name, PID: processID}
}

// WindowTitle reads the title of the foreground window when it still
// belongs to the given process. Returns "" on any failure.
func (w *WindowsAPI) WindowTitle(pid uint32) string {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return ""
	}

	var owner uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&owner)))
	if owner != pid {
		// Foreground moved between the focus event and this read.
		return ""
	}

	var buffer [512]uint16
	length, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buffer[0])), uintptr(len(buffer)))
	if length == 0 {
		return ""
	}
	return windows.UTF16ToString(buffer[:length])
}

// IdleSeconds reports seconds since the last keyboard or mouse input
// using GetLastInputInfo against the current tick count.
func (w *WindowsAPI) IdleSeconds() (float64, error) {
	info := lastInputInfo{}
	info.cbSize = uint32(unsafe.Sizeof(info))

	ret, _, _ := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 0, ErrUnavailable
	}

	ticks, _, _ := procGetTickCount.Call()
	// GetTickCount wraps every ~49 days; the unsigned subtraction still
	// yields the correct delta.
	elapsed := uint32(ticks) - info.dwTime
	return float64(elapsed) / 1000.0, nil
}

// WatchFocus installs a WinEvent hook for EVENT_SYSTEM_FOREGROUND on a
// dedicated OS thread running a message loop. The returned stop function
// posts WM_QUIT to that thread and unhooks.
func (w *WindowsAPI) WatchFocus(cb func(AppInfo)) (func(), error) {
	var (
		mu       sync.Mutex
		stopped  bool
		threadID uint32
		ready    = make(chan error, 1)
		done     = make(chan struct{})
	)

	hookProc := syscall.NewCallback(func(hook uintptr, event uint32, hwnd uintptr, object, child int32, thread, time uint32) uintptr {
		if event != eventSystemForeground || hwnd == 0 {
			return 0
		}
		var pid uint32
		procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
		if pid == 0 {
			return 0
		}
		name := processName(pid)
		if name == "" {
			return 0
		}
		mu.Lock()
		deliver := !stopped
		mu.Unlock()
		if deliver {
			cb(AppInfo{Name: name, PID: pid})
		}
		return 0
	})

	go func() {
		// WinEvent hooks deliver on the installing thread's message
		// loop, so this goroutine must stay on one OS thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		tid, _, _ := procGetCurrentThreadId.Call()
		mu.Lock()
		threadID = uint32(tid)
		mu.Unlock()

		hook, _, _ := procSetWinEventHook.Call(
			eventSystemForeground, eventSystemForeground,
			0, hookProc, 0, 0, wineventOutofcontext,
		)
		if hook == 0 {
			ready <- ErrUnavailable
			return
		}
		ready <- nil

		var m msg
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			if int32(ret) <= 0 {
				break
			}
		}

		procUnhookWinEvent.Call(hook)
		close(done)
	}()

	if err := <-ready; err != nil {
		return nil, err
	}

	stop := func() {
		mu.Lock()
		if stopped {
			mu.Unlock()
			return
		}
		stopped = true
		tid := threadID
		mu.Unlock()

		procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
		<-done
	}
	return stop, nil
}

// processName resolves a PID to its executable base name without
// extension, e.g. "C:\...\code.exe" -> "code".
func processName(pid uint32) string {
	hProcess, _, _ := procOpenProcess.Call(processQueryInformation|processVMRead, 0, uintptr(pid))
	if hProcess == 0 {
		return ""
	}
	defer procCloseHandle.Call(hProcess)

	var buffer [windows.MAX_PATH]uint16
	ret, _, _ := procGetModuleFileNameExW.Call(hProcess, 0, uintptr(unsafe.Pointer(&buffer[0])), windows.MAX_PATH)
	if ret == 0 {
		return ""
	}

	exePath := windows.UTF16ToString(buffer[:])
	if exePath == "" {
		return ""
	}

	filename := filepath.Base(exePath)
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
