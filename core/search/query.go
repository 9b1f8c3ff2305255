// Package search builds the station-list query string from the current map
// bounds and filter selections. The Query value is an owned state container;
// the rendering layer mutates it through the setters and hands the rendered
// string to the polling coordinator as the list cache key.
package search

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Bounds is the visible map region.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Filter categories understood by the list endpoint.
const (
	FilterChargerTypes = "chargerTypes"
	FilterMinOutput    = "minOutput"
	FilterParkingFree  = "parkingFree"
)

// Query holds the current search state.
type Query struct {
	mu           sync.Mutex
	bounds       *Bounds
	chargerTypes []string
	minOutput    []string
	parkingFree  []string
}

// SetBounds updates the map region.
func (q *Query) SetBounds(b Bounds) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.bounds = &b
}

// SetFilter replaces the id list of one filter category. Unknown categories
// are rejected.
func (q *Query) SetFilter(category string, ids []string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch category {
	case FilterChargerTypes:
		q.chargerTypes = ids
	case FilterMinOutput:
		q.minOutput = ids
	case FilterParkingFree:
		q.parkingFree = ids
	default:
		return fmt.Errorf("unknown filter category %q", category)
	}
	return nil
}

// String renders the query string: map bounds first, then the comma-joined
// filter id lists. The result doubles as the list cache key.
func (q *Query) String() string {
	q.mu.Lock()
	defer q.mu.Unlock()

	var parts []string
	if b := q.bounds; b != nil {
		parts = append(parts,
			"minLat="+formatCoord(b.MinLat),
			"maxLat="+formatCoord(b.MaxLat),
			"minLng="+formatCoord(b.MinLng),
			"maxLng="+formatCoord(b.MaxLng),
		)
	}
	if len(q.chargerTypes) > 0 {
		parts = append(parts, FilterChargerTypes+"="+strings.Join(q.chargerTypes, ","))
	}
	if len(q.minOutput) > 0 {
		parts = append(parts, FilterMinOutput+"="+strings.Join(q.minOutput, ","))
	}
	if len(q.parkingFree) > 0 {
		parts = append(parts, FilterParkingFree+"="+strings.Join(q.parkingFree, ","))
	}
	return strings.Join(parts, "&")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
