package model

import "fmt"

// HoursPerDay is the length of a valid hourly visit profile.
const HoursPerDay = 24

// StationInfo holds the per-station counters and metadata shared by the
// summary and detail payloads.
type StationInfo struct {
	Name           string   `json:"statNm"`
	Lat            string   `json:"lat"`
	Lng            string   `json:"lng"`
	ChargerTypes   []string `json:"chargerTypes"`
	MaxOutput      string   `json:"maxOutput"`
	ParkingFree    string   `json:"parkingFree"`
	UseTime        string   `json:"useTime"`
	TotalChargers  int      `json:"totalChargers"`
	UsableChargers int      `json:"usableChargers"`
	UsingChargers  int      `json:"usingChargers"`
}

// StatusKnown reports whether the upstream feed delivered any charger status
// for the station. Both counters at zero means "status unknown", which is
// distinct from "known and zero available".
func (i StationInfo) StatusKnown() bool {
	return i.UsableChargers > 0 || i.UsingChargers > 0
}

// Validate checks the charger counter invariant.
func (i StationInfo) Validate() error {
	if i.UsableChargers < 0 || i.UsingChargers < 0 || i.TotalChargers < 0 {
		return fmt.Errorf("negative charger count")
	}
	if i.UsableChargers+i.UsingChargers > i.TotalChargers {
		return fmt.Errorf("usable (%d) + using (%d) exceeds total (%d)",
			i.UsableChargers, i.UsingChargers, i.TotalChargers)
	}
	return nil
}

// StationSummary is the minimal telemetry needed to render a station marker.
type StationSummary struct {
	StationID      string         `json:"statId"`
	Info           StationInfo    `json:"info"`
	Demand         *DemandSignals `json:"demandInfo,omitempty"`
	LastUpdateTime string         `json:"lastUpdateTime"`
}

// DetailInfo extends StationInfo with the address and contact metadata only
// present in the detail payload.
type DetailInfo struct {
	StationInfo
	Address      string `json:"addr"`
	Location     string `json:"location"`
	OperatorName string `json:"busiNm"`
	OperatorCall string `json:"busiCall"`
	Kind         string `json:"kind"`
	KindDetail   string `json:"kindDetail"`
	Note         string `json:"note"`
	LimitDetail  string `json:"limitDetail"`
}

// StationDetail is a StationSummary plus the ordered charger units. It is
// fetched lazily when a user opens the detailed view.
type StationDetail struct {
	StationID      string         `json:"statId"`
	Info           DetailInfo     `json:"info"`
	Chargers       []ChargerUnit  `json:"chargers"`
	Demand         *DemandSignals `json:"demandInfo,omitempty"`
	LastUpdateTime string         `json:"lastUpdateTime"`
}

// Summary projects the detail down to the summary shape consumed by the
// classifier and icon rules.
func (d StationDetail) Summary() StationSummary {
	return StationSummary{
		StationID:      d.StationID,
		Info:           d.Info.StationInfo,
		Demand:         d.Demand,
		LastUpdateTime: d.LastUpdateTime,
	}
}

// DemandSignals bundles the live demand inputs used for prediction. A station
// without prediction history has no DemandSignals at all, which suppresses
// every prediction surface for it.
type DemandSignals struct {
	// ViewNum is the number of users currently viewing the station.
	ViewNum int `json:"viewNum"`
	// DepartsIn30m holds the departure timestamps recorded within the
	// trailing 30-minute window, oldest first.
	DepartsIn30m []string `json:"departsIn30m"`
	// HourlyVisitNum is the expected visit count per hour of day, 24 entries
	// indexed 0-23, or empty when no history exists.
	HourlyVisitNum []int `json:"hourlyVisitNum"`
}

// HasHistory reports whether a complete hourly profile is attached.
func (s DemandSignals) HasHistory() bool {
	return len(s.HourlyVisitNum) == HoursPerDay
}
