package httpstore

import (
	"fmt"
	"strings"
	"time"
)

// Accepted wire formats. The remote store does not guarantee a single date or
// time representation, so parsing tries each in order.
var (
	dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}
	timeLayouts = []string{"15:04", "15:04:05", "3:04 PM"}
)

// ParseDueInstant composes the wire date and time fields into one instant in
// the given location. A missing time means start of day. Errors carry the
// offending field so the caller can log it; callers treat a failed parse as
// not-due rather than failing the whole fetch.
func ParseDueInstant(dateValue string, timeValue string, loc *time.Location) (time.Time, error) {
	dateValue = strings.TrimSpace(dateValue)
	if dateValue == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	var day time.Time
	var err error
	for _, layout := range dateLayouts {
		day, err = time.ParseInLocation(layout, dateValue, loc)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", dateValue)
	}

	timeValue = strings.TrimSpace(timeValue)
	if timeValue == "" {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc), nil
	}

	var clock time.Time
	for _, layout := range timeLayouts {
		clock, err = time.Parse(layout, strings.ToUpper(timeValue))
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable time %q", timeValue)
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		loc,
	), nil
}
