package metrics

import coremetrics "chargecast/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordFetch forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordFetch(ev coremetrics.FetchEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordFetch(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordClassification forwards the outcome to all sinks.
func (m *MultiSink) RecordClassification(label string) error {
	for _, s := range m.Sinks {
		if err := s.RecordClassification(label); err != nil {
			return err
		}
	}
	return nil
}

// RecordStationCount forwards the list size to all sinks.
func (m *MultiSink) RecordStationCount(n int) error {
	for _, s := range m.Sinks {
		if err := s.RecordStationCount(n); err != nil {
			return err
		}
	}
	return nil
}
