package model

import "strings"

// DateOnly strips any time-of-day suffix from an ISO-8601 date. Entry
// dates carry day-level semantics only.
func DateOnly(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}
