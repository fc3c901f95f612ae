package util

import (
	"fmt"
	"strings"
	"time"
)

// Accepted reservation date_time layouts. Clients historically send naive
// timestamps like "2025-04-02T19:51:11.161" (no zone); those are taken as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDateTime parses a reservation timestamp in any accepted layout.
func ParseDateTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date_time")
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date_time %q", raw)
}

// FormatDateTime renders a timestamp the way clients sent it: naive, with
// millisecond precision when present.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.999")
}
