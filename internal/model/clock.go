package model

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownTimeSeconds sorts entries with no recorded time after every
// timed entry. Display code renders such entries as "—"; aggregation
// never consumes this value.
const UnknownTimeSeconds = 9999

// ParseClock parses an "mm:ss" time-in-period value. ok is false for
// empty or malformed input.
func ParseClock(s string) (seconds int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	mins, err := strconv.Atoi(parts[0])
	if err != nil || mins < 0 {
		return 0, false
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil || secs < 0 || secs > 59 {
		return 0, false
	}
	return mins*60 + secs, true
}

// FormatClock renders seconds as "mm:ss".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ClockSeconds returns the numeric time of an entry, or
// UnknownTimeSeconds when the entry has no parseable time.
func ClockSeconds(e GameEntry) int {
	if secs, ok := ParseClock(e.TimeInPeriod); ok {
		return secs
	}
	return UnknownTimeSeconds
}
