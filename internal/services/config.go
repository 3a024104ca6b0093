package services

import (
	"os"
	"strconv"
	"time"
)

// Idle threshold bounds in seconds. Values outside the range are
// clamped, never rejected, so a bad setting degrades to a sane one.
const (
	MinIdleThresholdSeconds     = 15
	MaxIdleThresholdSeconds     = 300
	DefaultIdleThresholdSeconds = 65
)

// TrackerConfig is an immutable snapshot of the tracking settings.
// It is read once at startup and passed by value; runtime setting
// changes go through a coordinator restart.
type TrackerConfig struct {
	// IdleThresholdSeconds is how long without input counts as idle
	IdleThresholdSeconds int

	// DayStartHour is the hour-of-day boundary used instead of midnight
	// when aggregating "today" statistics (0-23)
	DayStartHour int

	// PollInterval drives title and idle sampling
	PollInterval time.Duration

	// TickInterval drives snapshot publication for the UI
	TickInterval time.Duration
}

// DefaultTrackerConfig returns the default tracking settings
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		IdleThresholdSeconds: DefaultIdleThresholdSeconds,
		DayStartHour:         0,
		PollInterval:         2 * time.Second,
		TickInterval:         1 * time.Second,
	}
}

// TrackerConfigFromEnvironment loads tracking settings from environment
// variables, falling back to defaults for anything unset or unparsable
func TrackerConfigFromEnvironment() TrackerConfig {
	config := DefaultTrackerConfig()

	if v := os.Getenv("FOCAL_IDLE_THRESHOLD"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			config.IdleThresholdSeconds = seconds
		}
	}

	if v := os.Getenv("FOCAL_DAY_START_HOUR"); v != "" {
		if hour, err := strconv.Atoi(v); err == nil {
			config.DayStartHour = hour
		}
	}

	return config.Normalize()
}

// Normalize returns a copy with every field forced into its valid
// range. Out-of-range idle thresholds are clamped; an out-of-range day
// start hour and non-positive intervals fall back to defaults.
func (c TrackerConfig) Normalize() TrackerConfig {
	if c.IdleThresholdSeconds < MinIdleThresholdSeconds {
		c.IdleThresholdSeconds = MinIdleThresholdSeconds
	}
	if c.IdleThresholdSeconds > MaxIdleThresholdSeconds {
		c.IdleThresholdSeconds = MaxIdleThresholdSeconds
	}

	if c.DayStartHour < 0 || c.DayStartHour > 23 {
		c.DayStartHour = 0
	}

	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.TickInterval <= 0 {
		c.TickInterval = 1 * time.Second
	}

	return c
}

// IdleThreshold returns the idle threshold as a duration
func (c TrackerConfig) IdleThreshold() time.Duration {
	return time.Duration(c.IdleThresholdSeconds) * time.Second
}

// DayStartFor returns the start of the logical day containing now,
// i.e. the most recent occurrence of DayStartHour at or before now.
func (c TrackerConfig) DayStartFor(now time.Time) time.Time {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), c.DayStartHour, 0, 0, 0, now.Location())
	if now.Before(dayStart) {
		dayStart = dayStart.AddDate(0, 0, -1)
	}
	return dayStart
}
