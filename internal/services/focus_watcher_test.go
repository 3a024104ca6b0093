package services

import (
	"testing"
	"time"

	"focal/internal/platform"
	"focal/internal/testutils"
)

func newTestWatcher(t *testing.T) (*FocusWatcher, *fakeWindowAPI, *recordingListener, *manualScheduler) {
	t.Helper()
	api := &fakeWindowAPI{}
	listener := newRecordingListener()
	scheduler := &manualScheduler{}
	watcher := NewFocusWatcher(api, listener, DefaultTrackerConfig(), scheduler, testutils.NewCaptureLogger())
	return watcher, api, listener, scheduler
}

func waitDelivered(t *testing.T, listener *recordingListener) {
	t.Helper()
	select {
	case <-listener.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for callback delivery")
	}
}

func TestFocusWatcher_IdleTransitionFiresOnce(t *testing.T) {
	watcher, api, listener, _ := newTestWatcher(t)

	// Threshold is 65s; stay active first
	api.setIdle(10, nil)
	watcher.sampleIdle()

	// Cross the threshold and keep sampling while idle persists
	api.setIdle(70, nil)
	watcher.sampleIdle()
	watcher.sampleIdle()
	watcher.sampleIdle()

	_, _, idle, _ := listener.counts()
	if idle != 1 {
		t.Fatalf("Expected exactly 1 idle transition, got %d", idle)
	}
	if listener.idleEvents[0] != true {
		t.Error("Expected the transition to report idle=true")
	}

	// Returning to activity fires the opposite transition once
	api.setIdle(1, nil)
	watcher.sampleIdle()
	watcher.sampleIdle()

	_, _, idle, _ = listener.counts()
	if idle != 2 {
		t.Errorf("Expected 2 transitions total, got %d", idle)
	}
	if listener.idleEvents[1] != false {
		t.Error("Expected the second transition to report idle=false")
	}
}

func TestFocusWatcher_UnavailableIdleSampleMeansActive(t *testing.T) {
	watcher, api, listener, _ := newTestWatcher(t)

	api.setIdle(0, platform.ErrUnavailable)
	watcher.sampleIdle()
	watcher.sampleIdle()

	_, _, idle, _ := listener.counts()
	if idle != 0 {
		t.Errorf("Expected no idle transition when samples are unavailable, got %d", idle)
	}

	// Going idle, then losing the sampler, must resolve back to active
	api.setIdle(70, nil)
	watcher.sampleIdle()
	api.setIdle(0, platform.ErrUnavailable)
	watcher.sampleIdle()

	_, _, idle, _ = listener.counts()
	if idle != 2 {
		t.Fatalf("Expected idle then active transitions, got %d", idle)
	}
	if listener.idleEvents[1] != false {
		t.Error("Expected unavailable sample to resolve as active")
	}
}

func TestFocusWatcher_TitleChangeFiresOnRealChangeOnly(t *testing.T) {
	watcher, api, listener, _ := newTestWatcher(t)

	api.setApp("editor", 100)
	api.setTitle("file.txt")
	watcher.hooked = true
	watcher.lastApp = "editor"

	watcher.poll()
	_, titles, _, _ := listener.counts()
	if titles != 1 {
		t.Fatalf("Expected first title read to fire, got %d", titles)
	}

	// Same title again stays silent
	watcher.poll()
	if _, titles, _, _ = listener.counts(); titles != 1 {
		t.Errorf("Expected no event for unchanged title, got %d", titles)
	}

	// Two failed reads, then the original title again: nothing fires
	api.setTitle("")
	watcher.poll()
	watcher.poll()
	api.setTitle("file.txt")
	watcher.poll()

	if _, titles, _, _ = listener.counts(); titles != 1 {
		t.Errorf("Expected failed reads followed by the same title to stay silent, got %d events", titles)
	}

	// A genuine change still gets through afterwards
	api.setTitle("other.txt")
	watcher.poll()
	if _, titles, _, _ = listener.counts(); titles != 2 {
		t.Errorf("Expected the real change to fire, got %d events", titles)
	}
}

func TestFocusWatcher_FocusEventCarriesTitle(t *testing.T) {
	watcher, api, listener, _ := newTestWatcher(t)

	api.setTitle("file.txt")
	watcher.handleFocusChange(platform.AppInfo{Name: "editor", PID: 100})

	focus, _, _, _ := listener.counts()
	if focus != 1 {
		t.Fatalf("Expected 1 focus event, got %d", focus)
	}
	if listener.focusTitles[0] != "file.txt" {
		t.Errorf("Expected title read at focus time, got %q", listener.focusTitles[0])
	}

	// The title delivered at focus time becomes the comparison baseline,
	// so the next poll with the same title is silent
	api.setApp("editor", 100)
	watcher.hooked = true
	watcher.poll()
	if _, titles, _, _ := listener.counts(); titles != 0 {
		t.Errorf("Expected no title event after focus delivered the same title, got %d", titles)
	}
}

func TestFocusWatcher_PollingFallbackDetectsFocusChange(t *testing.T) {
	watcher, api, listener, _ := newTestWatcher(t)

	// No OS hook: focus changes are detected on the poll
	watcher.hooked = false
	api.setApp("editor", 100)
	api.setTitle("file.txt")

	watcher.poll()
	focus, _, _, _ := listener.counts()
	if focus != 1 {
		t.Fatalf("Expected poll to detect the focus change, got %d", focus)
	}

	// Same app on the next poll is not a focus change
	watcher.poll()
	if focus, _, _, _ = listener.counts(); focus != 1 {
		t.Errorf("Expected no repeat focus event for the same app, got %d", focus)
	}

	api.setApp("browser", 200)
	watcher.poll()
	if focus, _, _, _ = listener.counts(); focus != 2 {
		t.Errorf("Expected the app switch to fire, got %d", focus)
	}
}

func TestFocusWatcher_DeliversOSFocusEvents(t *testing.T) {
	watcher, api, listener, _ := newTestWatcher(t)

	watcher.Start()
	defer watcher.Stop()

	api.setTitle("file.txt")
	api.emitFocus("editor", 100)
	waitDelivered(t, listener)

	focus, _, _, _ := listener.counts()
	if focus != 1 {
		t.Fatalf("Expected the OS focus event to be delivered, got %d", focus)
	}
	if listener.focusEvents[0] != "editor" {
		t.Errorf("Expected focus event for editor, got %s", listener.focusEvents[0])
	}
}

func TestFocusWatcher_SchedulerTicksDriveCallbacks(t *testing.T) {
	watcher, api, listener, scheduler := newTestWatcher(t)

	watcher.Start()
	defer watcher.Stop()

	api.setApp("editor", 100)
	api.setTitle("file.txt")
	api.setIdle(1, nil)

	scheduler.Fire(2*time.Second, time.Now())
	waitDelivered(t, listener)

	// No OS event has arrived yet, so the first poll reports the app
	// itself as a focus change
	focus, _, _, _ := listener.counts()
	if focus != 1 {
		t.Fatalf("Expected the poll tick to deliver a focus change, got %d", focus)
	}

	scheduler.Fire(1*time.Second, time.Now())
	waitDelivered(t, listener)

	if _, _, _, ticks := listener.counts(); ticks != 1 {
		t.Errorf("Expected 1 UI tick, got %d", ticks)
	}
}

func TestFocusWatcher_PollCatchesMissedFocusEvent(t *testing.T) {
	watcher, api, listener, _ := newTestWatcher(t)

	// Subscription registered, but the OS never reported this switch
	watcher.hooked = true
	watcher.lastApp = "firefox"
	watcher.lastTitle = "Release notes"

	api.setApp("editor", 7)
	api.setTitle("main.go")

	watcher.poll()

	focus, titles, _, _ := listener.counts()
	if focus != 1 {
		t.Fatalf("Expected the poll to report the missed focus change, got %d", focus)
	}
	if titles != 0 {
		t.Errorf("Expected no title event against the old app's session, got %d", titles)
	}
	if listener.focusEvents[0] != "editor" || listener.focusTitles[0] != "main.go" {
		t.Errorf("Expected focus event for editor with its own title, got %s / %q",
			listener.focusEvents[0], listener.focusTitles[0])
	}
}

func TestFocusWatcher_StopPreventsLateCallbacks(t *testing.T) {
	watcher, api, listener, scheduler := newTestWatcher(t)

	watcher.Start()
	watcher.Stop()

	// Both timers were disarmed
	if stopped := scheduler.stoppedCount(); stopped != 2 {
		t.Errorf("Expected both tickers stopped, got %d", stopped)
	}

	api.mu.Lock()
	unsubscribed := api.unsubscribed
	api.mu.Unlock()
	if unsubscribed != 1 {
		t.Errorf("Expected the OS subscription to be removed once, got %d", unsubscribed)
	}

	// An OS callback arriving after Stop must not be delivered
	api.emitFocus("editor", 100)
	focus, _, _, _ := listener.counts()
	if focus != 0 {
		t.Errorf("Expected no callback delivery after Stop, got %d", focus)
	}
}

func TestFocusWatcher_StartStopIdempotent(t *testing.T) {
	watcher, api, listener, _ := newTestWatcher(t)

	watcher.Start()
	watcher.Start()
	watcher.Stop()
	watcher.Stop()

	// A second full cycle works and still delivers events
	watcher.Start()
	api.setTitle("file.txt")
	api.emitFocus("editor", 100)
	waitDelivered(t, listener)
	watcher.Stop()

	focus, _, _, _ := listener.counts()
	if focus != 1 {
		t.Errorf("Expected the restarted watcher to deliver events, got %d", focus)
	}
}

func TestFocusWatcher_WatchFailureFallsBackToPolling(t *testing.T) {
	api := &fakeWindowAPI{watchErr: platform.ErrUnavailable}
	listener := newRecordingListener()
	logger := testutils.NewCaptureLogger()
	watcher := NewFocusWatcher(api, listener, DefaultTrackerConfig(), &manualScheduler{}, logger)

	watcher.Start()
	defer watcher.Stop()

	if watcher.hooked {
		t.Error("Expected watcher to run unhooked when the subscription fails")
	}
	if len(logger.EntriesAtLevel("WARN")) == 0 {
		t.Error("Expected a warning about the failed subscription")
	}
}
