// Package congestion maps station counters and the fused demand prediction
// into a categorical state for the map surface. Rules are evaluated in a
// fixed order; the priority encodes confidence, not recency.
package congestion

import (
	"chargecast/core/demand"
	"chargecast/core/model"
)

// Label is the categorical congestion state shown to the user.
type Label string

const (
	LabelBusy      Label = "busy"
	LabelAvailable Label = "available"
	LabelUnknown   Label = "unknown"
)

// BusyThreshold is the busy-ratio cutoff. A ratio of exactly 0.75 classifies
// as busy. Tunable constant, preserved for behavioural parity.
const BusyThreshold = 0.75

// Fixed explanatory texts for the states that carry no ratio.
const (
	DetailAllOccupied   = "all chargers are currently in use"
	DetailStatusUnknown = "charger status has not been reported"
)

// Classification is the derived congestion state. Predicted and Ratio are
// only meaningful when HasRatio is true; they are never cached and are
// recomputed whenever the inputs change.
type Classification struct {
	Label     Label   `json:"label"`
	Predicted int     `json:"predicted,omitempty"`
	Ratio     float64 `json:"ratio,omitempty"`
	HasRatio  bool    `json:"hasRatio"`
	Detail    string  `json:"detail,omitempty"`
}

// Classify derives the congestion state from the station counters and demand
// signals at the given hour of day. First matching rule wins:
//
//  1. usable chargers and demand signals: predicted count over total chargers,
//     busy at or above the threshold
//  2. usable chargers, no signals: available, no ratio
//  3. no usable but some in use: busy, all occupied
//  4. neither usable nor in use: unknown
//
// Signals are never consulted when no charger is usable.
func Classify(info model.StationInfo, sig *model.DemandSignals, hourNow int) Classification {
	switch {
	case info.UsableChargers > 0 && sig != nil:
		predicted, _ := demand.PredictVisitCount(sig, info.UsingChargers, hourNow)
		ratio := float64(predicted) / float64(info.TotalChargers)
		label := LabelAvailable
		if ratio >= BusyThreshold {
			label = LabelBusy
		}
		return Classification{Label: label, Predicted: predicted, Ratio: ratio, HasRatio: true}
	case info.UsableChargers > 0:
		return Classification{Label: LabelAvailable}
	case info.UsingChargers > 0:
		return Classification{Label: LabelBusy, Detail: DetailAllOccupied}
	default:
		return Classification{Label: LabelUnknown, Detail: DetailStatusUnknown}
	}
}

// ClassifySummary is Classify applied to a summary payload.
func ClassifySummary(sum model.StationSummary, hourNow int) Classification {
	return Classify(sum.Info, sum.Demand, hourNow)
}
