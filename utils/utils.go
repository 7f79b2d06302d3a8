package utils

import "time"

// TimestampLayout keeps timestamps UTC, millisecond precision and sortable
// as plain strings.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func Timestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
