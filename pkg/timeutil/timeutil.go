// Package timeutil provides compact duration formatting for log output.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration in the compact style used by debug log
// suffixes: sub-millisecond durations in microseconds, then ms, s, m, h.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.1fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}
