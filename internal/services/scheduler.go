package services

import "time"

// Clock abstracts time.Now so tests can run on virtual time
type Clock interface {
	Now() time.Time
}

// Ticker is a stoppable periodic signal source
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Scheduler creates tickers. Production code uses the system scheduler;
// tests inject a manual one and advance it deterministically instead of
// sleeping real time.
type Scheduler interface {
	NewTicker(d time.Duration) Ticker
}

// SystemClock reads the real wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// SystemScheduler creates real time.Ticker instances
type SystemScheduler struct{}

func (SystemScheduler) NewTicker(d time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(d)}
}

type systemTicker struct {
	ticker *time.Ticker
}

func (t *systemTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *systemTicker) Stop() {
	t.ticker.Stop()
}
