// Package charger derives per-unit state from raw charger telemetry:
// whether a session timestamp is still trustworthy, when a running session
// should reach its charge target, and display-friendly elapsed times.
package charger

import (
	"strings"
	"time"

	"chargecast/core/model"
)

// FreshnessWindow bounds how old a charging-start timestamp may be before it
// is treated as a leftover from a session the upstream feed never closed.
// Empirically chosen, tunable.
const FreshnessWindow = 16 * time.Hour

// IsFresh reports whether a charger's last-known start timestamp can be
// trusted for derived displays. Only a unit that is actively charging, with a
// parseable timestamp inside the freshness window, qualifies. Malformed
// timestamps are simply not fresh, never an error.
func IsFresh(status model.ChargerStatus, timestamp string, now time.Time) bool {
	if status != model.StatusCharging {
		return false
	}
	if strings.TrimSpace(timestamp) == "" {
		return false
	}
	t, err := model.ParseTimestamp(timestamp)
	if err != nil {
		return false
	}
	return absDuration(now.Sub(t)) < FreshnessWindow
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
