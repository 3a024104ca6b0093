package types

import (
	"strings"
	"time"
)

// Category groups applications for reporting purposes.
// IDs are case-normalized and compared case-insensitively everywhere.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	SortOrder int       `json:"sortOrder"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeCategoryID lower-cases and trims a category identifier.
// All lookups and foreign references go through this.
func NormalizeCategoryID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Application is one tracked process. Created on first observed focus,
// mutated on every session close, never deleted automatically.
type Application struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"categoryId"` // empty = uncategorized
	FirstSeen  time.Time `json:"firstSeen"`
	LastSeen   time.Time `json:"lastSeen"`
	TotalTime  int64     `json:"totalTime"` // in seconds
	VisitCount int64     `json:"visitCount"`
}

// Window is one distinct title ever observed for an application.
type Window struct {
	ID            int64  `json:"id"`
	ApplicationID int64  `json:"applicationId"`
	Title         string `json:"title"`
	TotalTime     int64  `json:"totalTime"` // in seconds
	VisitCount    int64  `json:"visitCount"`
}

// Session is one continuous stretch of focus on a window. EndTime is the
// zero value while the session is open; at most one open session exists
// in the whole store. A session is immutable once closed.
type Session struct {
	ID              string    `json:"id"`
	WindowID        int64     `json:"windowId"`
	AppName         string    `json:"appName"`
	WindowTitle     string    `json:"windowTitle"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	ActiveDuration  int64     `json:"activeDuration"`  // in seconds
	PassiveDuration int64     `json:"passiveDuration"` // in seconds
}

// TotalDuration returns active plus passive time in seconds.
func (s *Session) TotalDuration() int64 {
	return s.ActiveDuration + s.PassiveDuration
}

// IsOpen reports whether the session has not been closed yet.
func (s *Session) IsOpen() bool {
	return s.EndTime.IsZero()
}

// AppAggregate is one application's totals within a logical day,
// produced in a single pass by the today-aggregate query.
type AppAggregate struct {
	ApplicationID int64  `json:"applicationId"`
	AppName       string `json:"appName"`
	CategoryID    string `json:"categoryId"`
	ActiveTime    int64  `json:"activeTime"`  // in seconds
	PassiveTime   int64  `json:"passiveTime"` // in seconds
	SessionCount  int64  `json:"sessionCount"`
}

// TodayAggregate is the full result of the hot aggregate query.
type TodayAggregate struct {
	DayStart time.Time      `json:"dayStart"`
	Apps     []AppAggregate `json:"apps"`
}

// TotalActive sums active time across all applications.
func (t *TodayAggregate) TotalActive() int64 {
	var total int64
	for _, a := range t.Apps {
		total += a.ActiveTime
	}
	return total
}

// HourlyBuckets holds 24 per-hour active-duration totals for one
// application on one logical day. Index 0 is the day-start hour.
type HourlyBuckets struct {
	ApplicationID int64     `json:"applicationId"`
	DayStart      time.Time `json:"dayStart"`
	Buckets       [24]int64 `json:"buckets"` // in seconds
}

// CategoryTotal is one category's accumulated active time for a week.
type CategoryTotal struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	ActiveTime int64  `json:"activeTime"` // in seconds
}

// Snapshot is the read-only state the coordinator publishes to
// observers on every tick. It never carries store-derived data, so
// publishing it can never block on a database write.
type Snapshot struct {
	AppName     string `json:"appName"`
	WindowTitle string `json:"windowTitle"`
	ElapsedTime int64  `json:"elapsedTime"` // seconds since the open session started
	IsIdle      bool   `json:"isIdle"`
}
