package ingest

import (
	"strings"
	"time"
)

// ClockLayouts are the free-text time-of-day forms found in legacy job
// documents, tried in order after upper-casing the input.
var ClockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"03:04 PM",
	"3 PM",
	"3PM",
	"15:04",
	"15:04:05",
}

// ParseClock parses a clock string such as "9:00 AM" into hour and minute.
func ParseClock(s string) (hour, minute int, ok bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, 0, false
	}

	for _, layout := range ClockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), t.Minute(), true
		}
	}

	return 0, 0, false
}

// CoerceClock places a clock string on the calendar day of base, in loc. The
// base is the document's last-modified or created time; the caller falls
// back to now.
func CoerceClock(clock string, base time.Time, loc *time.Location) (time.Time, bool) {
	h, m, ok := ParseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	y, mo, d := base.In(loc).Date()
	return time.Date(y, mo, d, h, m, 0, 0, loc), true
}
