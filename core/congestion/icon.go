package congestion

import "chargecast/core/model"

// Icon is the marker variant rendered on the map.
type Icon int

const (
	IconSelected Icon = iota
	IconPredictBusy
	IconPredictAvailable
	IconPredictAllBusy
	IconAvailable
	IconOccupied
	IconUnknown
)

// String returns the asset name of the icon.
func (i Icon) String() string {
	switch i {
	case IconSelected:
		return "selected"
	case IconPredictBusy:
		return "predict-busy"
	case IconPredictAvailable:
		return "predict-available"
	case IconPredictAllBusy:
		return "predict-busy-all-occupied"
	case IconAvailable:
		return "available"
	case IconOccupied:
		return "occupied"
	default:
		return "unknown"
	}
}

// SelectIcon resolves the marker icon for a station. The rule list is
// evaluated top to bottom, first match wins:
//
//	selection > prediction overlay (toggle on) > base status
//
// The prediction overlay only applies to stations that can be classified
// from demand signals; without signals the base status icon is kept even
// when the toggle is on.
func SelectIcon(sum model.StationSummary, selected, predictEnabled bool, hourNow int) Icon {
	if selected {
		return IconSelected
	}
	if predictEnabled {
		c := ClassifySummary(sum, hourNow)
		switch {
		case c.HasRatio && c.Label == LabelBusy:
			return IconPredictBusy
		case c.HasRatio:
			return IconPredictAvailable
		case c.Label == LabelBusy:
			return IconPredictAllBusy
		}
	}
	switch {
	case sum.Info.UsableChargers > 0:
		return IconAvailable
	case sum.Info.UsingChargers > 0:
		return IconOccupied
	default:
		return IconUnknown
	}
}
