// Package metrics defines the telemetry sink consumed by the polling
// coordinator and the classification pipeline. Implementations live under
// infra/metrics.
package metrics

import "time"

// FetchEvent records one coordinator cache access.
type FetchEvent struct {
	// Kind is the entity kind of the cache key (station-list, station-brief,
	// station-detail).
	Kind string
	// CacheHit is true when the access was served without a network fetch.
	CacheHit bool
	// Failed is true when the underlying fetch returned an error.
	Failed bool
	// Duration is the wall time of the access.
	Duration time.Duration
}

// Sink receives derived-state telemetry events.
type Sink interface {
	RecordFetch(FetchEvent) error
	// RecordClassification counts one classification outcome by label.
	RecordClassification(label string) error
	// RecordStationCount reports the size of the latest station list.
	RecordStationCount(n int) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordFetch(FetchEvent) error          { return nil }
func (NopSink) RecordClassification(string) error     { return nil }
func (NopSink) RecordStationCount(int) error          { return nil }
