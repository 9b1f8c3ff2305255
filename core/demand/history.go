package demand

import (
	"gonum.org/v1/gonum/stat"

	"chargecast/core/model"
)

// ProfileStats summarizes a 24-slot hourly visit profile for the graph
// surface.
type ProfileStats struct {
	Mean       float64 `json:"mean"`
	PeakHour   int     `json:"peakHour"`
	PeakVisits int     `json:"peakVisits"`
}

// Profile computes summary statistics over the hourly visit profile. ok is
// false for a missing or mis-sized profile.
func Profile(hourly []int) (ProfileStats, bool) {
	if len(hourly) != model.HoursPerDay {
		return ProfileStats{}, false
	}
	vals := make([]float64, len(hourly))
	peakHour := 0
	for i, v := range hourly {
		vals[i] = float64(v)
		if v > hourly[peakHour] {
			peakHour = i
		}
	}
	return ProfileStats{
		Mean:       stat.Mean(vals, nil),
		PeakHour:   peakHour,
		PeakVisits: hourly[peakHour],
	}, true
}
