// Package demand fuses the live demand signals of a charging station into a
// predicted near-term visit count. The prediction is a fixed weighted
// heuristic, not a trained model: deterministic and reproducible for
// identical inputs.
package demand

import (
	"math"

	"chargecast/core/model"
)

// Signal weights encode a confidence ordering: live occupancy and recent
// departures are the strongest signals, viewer interest is a weak proxy and
// the historical average is a moderate smoothing term. Tunable constants,
// preserved for behavioural parity with the production heuristic.
const (
	WeightUsing   = 0.8
	WeightDeparts = 0.8
	WeightViewers = 0.33
	WeightHistory = 0.5
)

// PredictVisitCount estimates how many users will visit the station within
// the next hour. ok is false when the station carries no demand signals at
// all; callers must branch on it before using the count. The function is
// pure.
func PredictVisitCount(sig *model.DemandSignals, usingChargers, hourNow int) (int, bool) {
	if sig == nil {
		return 0, false
	}
	viewTerm := float64(sig.ViewNum)
	departTerm := float64(len(sig.DepartsIn30m))
	history := historyTerm(sig.HourlyVisitNum, hourNow)

	predicted := math.Round(float64(usingChargers)*WeightUsing +
		departTerm*WeightDeparts +
		viewTerm*WeightViewers +
		history*WeightHistory)
	if predicted < 0 {
		predicted = 0
	}
	return int(predicted), true
}

// historyTerm averages the visit history of the current hour and the one
// before it (hour 0 pairs with itself). A missing or mis-sized profile
// contributes nothing.
func historyTerm(hourly []int, hourNow int) float64 {
	if len(hourly) != model.HoursPerDay || hourNow < 0 || hourNow >= model.HoursPerDay {
		return 0
	}
	prev := hourNow - 1
	if hourNow == 0 {
		prev = 0
	}
	return math.Round(float64(hourly[prev]+hourly[hourNow]) / 2)
}
