package model

import (
	"strconv"
	"strings"
)

// ChargerStatus is the upstream numeric status code of a single charger unit.
type ChargerStatus string

const (
	StatusCommError   ChargerStatus = "1"
	StatusAvailable   ChargerStatus = "2"
	StatusCharging    ChargerStatus = "3"
	StatusSuspended   ChargerStatus = "4"
	StatusInspecting  ChargerStatus = "5"
	StatusUnconfirmed ChargerStatus = "9"
)

// String returns a human-readable representation of the status code.
func (s ChargerStatus) String() string {
	switch s {
	case StatusCommError:
		return "comm error"
	case StatusAvailable:
		return "available"
	case StatusCharging:
		return "charging"
	case StatusSuspended:
		return "suspended"
	case StatusInspecting:
		return "inspecting"
	case StatusUnconfirmed:
		return "unconfirmed"
	default:
		return "unknown"
	}
}

// ChargerUnit is a single physical charging point with its own status and
// session timestamps. Timestamps are either blank or 14-digit YYYYMMDDHHmmss
// strings; the power rating arrives as an unparsed string that may be blank.
type ChargerUnit struct {
	StationID       string        `json:"statId"`
	ChargerID       string        `json:"chgerId"`
	Type            string        `json:"chgerType"`
	Status          ChargerStatus `json:"stat"`
	Output          string        `json:"output"`
	Method          string        `json:"method"`
	StatusUpdatedAt string        `json:"statUpdDt"`
	LastStartAt     string        `json:"lastTsdt"`
	LastEndAt       string        `json:"lastTedt"`
}

// OutputKW parses the power rating. ok is false when the rating is blank or
// not a number.
func (c ChargerUnit) OutputKW() (float64, bool) {
	s := strings.TrimSpace(c.Output)
	if s == "" {
		return 0, false
	}
	kw, err := strconv.ParseFloat(s, 64)
	if err != nil || kw <= 0 {
		return 0, false
	}
	return kw, true
}
