// Package format holds the display formatting helpers shared by the CLI
// and TUI: Beijing-time rendering and media URL resolution.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Backend timestamps arrive in a handful of layouts; naive ones (no zone
// marker) are UTC by convention.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var beijing = loadBeijing()

func loadBeijing() *time.Location {
	if loc, err := time.LoadLocation("Asia/Shanghai"); err == nil {
		return loc
	}
	return time.FixedZone("CST", 8*60*60)
}

func parseTimestamp(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BeijingTime renders a backend timestamp as "2006/01/02 15:04:05" in the
// Asia/Shanghai zone. Unparseable input is returned unchanged so that odd
// backend values still display something.
func BeijingTime(value string) string {
	t, ok := parseTimestamp(value)
	if !ok {
		return value
	}
	return t.In(beijing).Format("2006/01/02 15:04:05")
}

// BeijingDate renders only the date part.
func BeijingDate(value string) string {
	t, ok := parseTimestamp(value)
	if !ok {
		return value
	}
	return t.In(beijing).Format("2006/01/02")
}

// BeijingClock renders only the time-of-day part.
func BeijingClock(value string) string {
	t, ok := parseTimestamp(value)
	if !ok {
		return value
	}
	return t.In(beijing).Format("15:04:05")
}

// Clock renders a playback position as m:ss or h:mm:ss.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
