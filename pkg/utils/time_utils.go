// utils/timeutil.go
package utils

import "time"

// ISOMillis is the layout of JavaScript's Date.prototype.toISOString.
const ISOMillis = "2006-01-02T15:04:05.000Z"

// NowISO returns the current UTC time in ISOMillis layout.
func NowISO() string { return FormatISO(time.Now()) }

func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}
