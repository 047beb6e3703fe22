// Package utils provides common utility functions.
package utils

import (
	"fmt"
	"strconv"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// Preset ranges offered by the audit dashboards, in days.
var PresetRangeDays = []int{7, 30, 90}

// DateRange is an inclusive reporting window.
type DateRange struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// GetCurrentTimeMillis returns current time in milliseconds since epoch.
func GetCurrentTimeMillis() int64 {
	return time.Now().UnixMilli()
}

// MillisToTime converts milliseconds since epoch to time.Time.
func MillisToTime(millis int64) time.Time {
	return time.UnixMilli(millis)
}

// LastDays returns the window ending at now and starting days earlier.
func LastDays(now time.Time, days int) DateRange {
	return DateRange{Start: now.AddDate(0, 0, -days), End: now}
}

// ParseDateRange resolves the range query parameters. An explicit start and end
// win over a preset; an empty preset means the default of 30 days.
func ParseDateRange(preset, start, end string, now time.Time) (DateRange, error) {
	if start != "" || end != "" {
		if start == "" || end == "" {
			return DateRange{}, fmt.Errorf("both start and end are required for an explicit range")
		}
		s, err := ParseTime(start)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start: %w", err)
		}
		e, err := ParseTime(end)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end: %w", err)
		}
		if isDateOnly(end) {
			e = EndOfDay(e)
		}
		if e.Before(s) {
			return DateRange{}, fmt.Errorf("end must not be before start")
		}
		return DateRange{Start: s, End: e}, nil
	}

	if preset == "" {
		return LastDays(now, 30), nil
	}
	days, err := strconv.Atoi(preset)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid range: %s", preset)
	}
	for _, allowed := range PresetRangeDays {
		if days == allowed {
			return LastDays(now, days), nil
		}
	}
	return DateRange{}, fmt.Errorf("range must be one of 7, 30 or 90 days")
}

// EndOfDay returns the last millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Millisecond)
}

func isDateOnly(value string) bool {
	_, err := time.Parse(dateOnlyLayout, value)
	return err == nil
}

// ParseTime accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func ParseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse(dateOnlyLayout, value)
}

// ISO formats t the way the backend expects range parameters.
func ISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
