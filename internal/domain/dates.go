package domain

import (
	"strconv"
	"strings"
	"time"
)

// Day represents a date at day granularity, or the unknown sentinel.
// lifecycle and bucket boundaries compare whole days at local midnight,
// so the time-of-day component is always truncated away.
type Day struct {
	t     time.Time
	known bool
}

// UnknownDay returns the unknown sentinel.
func UnknownDay() Day {
	return Day{}
}

// DayOf creates a Day from a time, truncated to local midnight.
func DayOf(t time.Time) Day {
	return Day{t: truncateToDay(t), known: true}
}

// Known returns true if the day holds a real date.
func (d Day) Known() bool {
	return d.known
}

// Time returns the underlying midnight timestamp.
// only meaningful when Known returns true.
func (d Day) Time() time.Time {
	return d.t
}

// DaysUntil returns the whole-day difference from now's midnight to this day.
// positive when the day is in the future, negative when it has passed,
// zero when the day is today. computed on calendar fields so DST transitions
// cannot skew the count.
func (d Day) DaysUntil(now time.Time) int {
	return int(utcMidnight(d.t).Sub(utcMidnight(now)).Hours() / 24)
}

// DaysSince returns the whole-day difference from this day to now's midnight.
func (d Day) DaysSince(now time.Time) int {
	return -d.DaysUntil(now)
}

// String returns the date in ISO format, or "unknown".
func (d Day) String() string {
	if !d.known {
		return "unknown"
	}
	return d.t.Format("2006-01-02")
}

// dateLayouts are the formats accepted from upstream record sources.
// front-desk imports and the legacy API deliver dates in any of these.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// NormalizeDate converts an arbitrary date-like value into a Day.
// accepts time.Time, *time.Time, strings in common layouts, and numeric
// epoch timestamps (seconds or milliseconds). anything missing or
// unparseable becomes the unknown sentinel. never panics, never errors.
func NormalizeDate(v any) Day {
	t, ok := NormalizeTime(v)
	if !ok {
		return UnknownDay()
	}
	return DayOf(t)
}

// NormalizeTime converts an arbitrary date-like value into a timestamp
// without truncation. used where sub-day precision matters (check-ins).
// returns false for missing or unparseable input.
func NormalizeTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val, true
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return *val, true
	case string:
		return parseTimeString(val)
	case *string:
		if val == nil {
			return time.Time{}, false
		}
		return parseTimeString(*val)
	case int64:
		return epochToTime(val)
	case int:
		return epochToTime(int64(val))
	case float64:
		return epochToTime(int64(val))
	default:
		return time.Time{}, false
	}
}

func parseTimeString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// numeric string: treat as epoch timestamp
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return epochToTime(n)
	}

	return time.Time{}, false
}

// epochToTime interprets a numeric timestamp as epoch seconds or, when the
// magnitude clearly exceeds the second range, epoch milliseconds.
func epochToTime(n int64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	// anything beyond year ~5138 in seconds is a millisecond timestamp
	const maxEpochSeconds = 99999999999
	if n > maxEpochSeconds {
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// utcMidnight maps a time to its calendar date in UTC, which makes day
// arithmetic exact regardless of zone or DST.
func utcMidnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
