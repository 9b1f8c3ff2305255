// Package app wires the configuration into a running derived-state service:
// REST client, poll coordinator, detail watcher, metrics sinks, the optional
// MQTT fan-out and the HTTP surface.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"chargecast/api/stations"
	"chargecast/config"
	"chargecast/core/congestion"
	coremetrics "chargecast/core/metrics"
	"chargecast/core/poller"
	"chargecast/core/viewer"
	"chargecast/infra/api"
	"chargecast/infra/logger"
	"chargecast/infra/metrics"
	"chargecast/infra/mqtt"
	"chargecast/internal/eventbus"
)

// Service orchestrates the poll coordinator and its consumers.
type Service struct {
	Coordinator *poller.Coordinator
	Watcher     *poller.DetailWatcher
	Client      *api.Client

	bus       *eventbus.Bus[poller.DetailUpdate]
	publisher *mqtt.Publisher
	sink      coremetrics.Sink
	log       logger.Logger

	mu      sync.Mutex
	session *viewer.Session

	promEnabled bool
	promAddr    string
	httpEnabled bool
	httpAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	client := api.New(cfg.API)
	coord := poller.New(client, cfg.Poller, logger.New("poller"), sink)
	bus := eventbus.New[poller.DetailUpdate]()
	watcher := poller.NewDetailWatcher(coord, bus, logger.New("detail-watcher"))

	svc := &Service{
		Coordinator: coord,
		Watcher:     watcher,
		Client:      client,
		bus:         bus,
		sink:        sink,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
		httpEnabled: cfg.HTTP.Enabled,
		httpAddr:    cfg.HTTP.Addr,
	}

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go s.consumeUpdates(ctx)
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.httpEnabled {
		go func() {
			if err := s.serveHTTP(ctx); err != nil {
				s.log.Errorf("http server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// SelectStation switches the watched detail view and rolls the viewer
// lifecycle over: the previous session's decrement fires, and a new session
// starts for the selected station. An empty id closes the view.
func (s *Service) SelectStation(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		s.session.Close()
		s.session = nil
	}
	s.Watcher.Select(ctx, id)
	if id != "" {
		s.session = viewer.NewSession(id, s.Client, logger.New("viewer"))
	}
}

// consumeUpdates classifies every detail refresh and fans the snapshot out to
// the metrics sink and, when enabled, the MQTT broker.
func (s *Service) consumeUpdates(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case up, ok := <-sub:
			if !ok {
				return
			}
			s.handleUpdate(up)
		}
	}
}

func (s *Service) handleUpdate(up poller.DetailUpdate) {
	now := time.Now()
	sum := up.Detail.Summary()
	cls := congestion.ClassifySummary(sum, now.Hour())
	if err := s.sink.RecordClassification(string(cls.Label)); err != nil {
		s.log.Warnf("record classification: %v", err)
	}
	if s.publisher == nil {
		return
	}
	snap := mqtt.Snapshot{
		StationID: up.StationID,
		Label:     string(cls.Label),
		Predicted: cls.Predicted,
		Ratio:     cls.Ratio,
		HasRatio:  cls.HasRatio,
		At:        now,
	}
	if err := s.publisher.PublishSnapshot(snap); err != nil {
		s.log.Errorf("publish snapshot: %v", err)
	}
}

func (s *Service) serveHTTP(ctx context.Context) error {
	mux := http.NewServeMux()
	stations.NewHandler(s.Coordinator).Routes(mux)
	srv := &http.Server{Addr: s.httpAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warnf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("http surface listening on %s", s.httpAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.session != nil {
		s.session.Close()
		s.session = nil
	}
	s.mu.Unlock()
	s.Watcher.Close()
	s.bus.Close()
	if s.publisher != nil {
		s.publisher.Close()
	}
	return nil
}
