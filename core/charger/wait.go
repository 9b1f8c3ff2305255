package charger

import (
	"math"
	"time"
)

// Charge estimates assume a nominal battery charged to 80%, the point where
// most sessions end. Tunable constants, not structural.
const (
	nominalBatteryKWh = 70.0
	chargeTargetRatio = 0.8
)

// EstimateFinish returns the instant a session that started at start is
// expected to reach the charge target on a charger rated powerKW.
// A start timestamp further than the freshness window from now is considered
// unreliable and yields now, meaning zero remaining wait, instead of a
// misleading large estimate. Callers should surface the result only when
// IsFresh reported true for the same timestamp.
func EstimateFinish(start time.Time, powerKW float64, now time.Time) time.Time {
	if powerKW <= 0 {
		return now
	}
	if absDuration(now.Sub(start)) > FreshnessWindow {
		return now
	}
	mins := math.Floor(nominalBatteryKWh / (powerKW * chargeTargetRatio) * 60 * chargeTargetRatio)
	return start.Add(time.Duration(mins) * time.Minute)
}
