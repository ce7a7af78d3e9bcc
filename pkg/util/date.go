package util

import (
	"strconv"
	"time"
)

// ISOMillis matches the wire format of statement end dates, e.g.
// "2023-12-31T00:00:00.000Z".
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

// YMD is the calendar-day format used for period bounds and price-map keys.
const YMD = "2006-01-02"

// FormatYMD formats a time as a calendar day.
func FormatYMD(t time.Time) string { return t.Format(YMD) }

// FormatISO formats a time as a UTC ISO-8601 timestamp with milliseconds.
func FormatISO(t time.Time) string { return t.UTC().Format(ISOMillis) }

// ParseYMD parses a YYYY-MM-DD calendar day.
func ParseYMD(s string) (time.Time, bool) {
	t, err := time.Parse(YMD, s)
	return t, err == nil
}

// ParseTime tries RFC3339, RFC3339Nano, YYYY-MM-DD, and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, ok := ParseYMD(s); ok {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// FromEpoch converts a vendor epoch number to a time. Values below 1e12 are
// unix seconds, larger ones milliseconds.
func FromEpoch(v float64) time.Time {
	ms := int64(v)
	if v < 1e12 {
		ms = int64(v * 1000)
	}
	return time.UnixMilli(ms)
}
