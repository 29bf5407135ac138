// Package dates normalizes the loosely formatted date strings found in
// book metadata into UTC instants.
package dates // import "github.com/jebrand/jebman/internal/util/dates"

import (
	"regexp"
	"time"
)

// The grammars are fixed patterns: month 01-12, day 01-31, hour 00-23,
// minute/second 00-59. Day-of-month is not validated against the month
// here; time.Parse performs the final validation.
var (
	dateOnlyMatcher = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	utcMatcher      = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])T([01]\d|2[0-3]):[0-5]\d:[0-5]\d(\.\d+)?Z$`)
	offsetMatcher   = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])T([01]\d|2[0-3]):[0-5]\d:[0-5]\d(\.\d+)?[+-]([01]\d|2[0-3]):[0-5]\d$`)
)

// Parse converts a metadata date string into a UTC instant. It recognizes,
// in order: a plain date (midnight UTC), an ISO datetime in UTC, and an
// ISO datetime with an explicit offset (normalized to UTC). Anything else
// yields the current instant truncated to day granularity; callers must be
// aware that garbage input produces "now" rather than an error.
func Parse(text string) time.Time {
	switch {
	case dateOnlyMatcher.MatchString(text):
		if t, err := time.Parse("2006-01-02", text); err == nil {
			return t.UTC()
		}
	case utcMatcher.MatchString(text), offsetMatcher.MatchString(text):
		if t, err := time.Parse(time.RFC3339Nano, text); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}
