package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "chargecast/core/metrics"
)

// PromSink records coordinator and classification events in Prometheus
// metrics.
type PromSink struct {
	fetches   *prometheus.CounterVec
	durations *prometheus.HistogramVec
	labels    *prometheus.CounterVec
	stations  prometheus.Gauge
}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The Prometheus server should be started separately on cfg.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "station_fetch_total",
		Help: "Total number of station cache accesses",
	}, []string{"kind", "cache_hit", "failed"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "station_fetch_duration_seconds",
		Help:    "Wall time of station cache accesses",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	labels := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "station_classification_total",
		Help: "Total classification outcomes by label",
	}, []string{"label"})
	stations := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "station_list_size",
		Help: "Number of stations in the latest list result",
	})

	if err := reg.Register(fetches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fetches = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(durations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			durations = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(labels); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			labels = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(stations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			stations = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{fetches: fetches, durations: durations, labels: labels, stations: stations}, nil
}

// RecordFetch increments the fetch counter and observes the duration.
func (s *PromSink) RecordFetch(ev coremetrics.FetchEvent) error {
	s.fetches.WithLabelValues(ev.Kind, strconv.FormatBool(ev.CacheHit), strconv.FormatBool(ev.Failed)).Inc()
	s.durations.WithLabelValues(ev.Kind).Observe(ev.Duration.Seconds())
	return nil
}

// RecordClassification counts one classification outcome.
func (s *PromSink) RecordClassification(label string) error {
	s.labels.WithLabelValues(label).Inc()
	return nil
}

// RecordStationCount sets the list-size gauge.
func (s *PromSink) RecordStationCount(n int) error {
	s.stations.Set(float64(n))
	return nil
}
