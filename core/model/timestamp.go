package model

import (
	"fmt"
	"time"
)

// timestampLayout is the 14-digit YYYYMMDDHHmmss format used by the upstream
// charger feed. Parsing goes through time.ParseInLocation rather than a
// locale-dependent date string so behaviour does not diverge across runtimes.
const timestampLayout = "20060102150405"

// ParseTimestamp converts a 14-digit timestamp into a time.Time in the local
// zone. It rejects anything that is not exactly 14 digits or does not name a
// real calendar instant.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) != len(timestampLayout) {
		return time.Time{}, fmt.Errorf("timestamp %q: want %d digits, got %d", s, len(timestampLayout), len(s))
	}
	t, err := time.ParseInLocation(timestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatTimestamp renders t in the upstream 14-digit format.
// ParseTimestamp(FormatTimestamp(t)) round-trips for any t with second
// precision.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
