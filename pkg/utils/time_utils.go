package utils

import "time"

// DB columns store unix seconds; API responses render RFC 3339 UTC.

func NowUnixSeconds() int64 { return time.Now().Unix() }

func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

// FormatRFC3339 returns "" for the zero value so callers can omit the field.
func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func FormatUnixSeconds(t int64) string {
	return FormatRFC3339(FromUnixSeconds(t))
}

func FormatUnixSecondsPtr(t *int64) string {
	if t == nil {
		return ""
	}
	return FormatUnixSeconds(*t)
}
