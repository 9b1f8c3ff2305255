// Package poller owns the transport-level cache and the refetch discipline
// that keeps station telemetry current without redundant network work. The
// cache is the only shared resource in the system; derived-state functions
// read immutable snapshots obtained from here.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	coremetrics "chargecast/core/metrics"
	"chargecast/core/model"
	"chargecast/infra/logger"
)

// Kind identifies the entity class of a cache key.
type Kind string

const (
	KindList   Kind = "station-list"
	KindBrief  Kind = "station-brief"
	KindDetail Kind = "station-detail"
)

// Key addresses one cache entry: entity kind, station id and, for list
// queries, the rendered query string.
type Key struct {
	Kind   Kind
	ID     string
	Params string
}

// String renders the key for the singleflight group.
func (k Key) String() string {
	return string(k.Kind) + "|" + k.ID + "|" + k.Params
}

// Transport is the upstream data provider the coordinator reads from.
type Transport interface {
	FetchStationList(ctx context.Context, query string) ([]model.StationSummary, error)
	FetchStationBrief(ctx context.Context, id string) (*model.StationSummary, error)
	FetchStationDetail(ctx context.Context, id string) (*model.StationDetail, error)
}

// ErrNoStation is returned for operations that require a station id.
var ErrNoStation = errors.New("no station id")

// Config defines the refetch discipline.
type Config struct {
	// DetailIntervalSeconds is the fixed refetch interval of the detail
	// watcher while a detail view is open.
	DetailIntervalSeconds int `json:"detail_interval_seconds"`
	// BriefStaleSeconds is the window during which a brief-info result is
	// served from cache without a new request.
	BriefStaleSeconds int `json:"brief_stale_seconds"`
}

// SetDefaults applies the production refetch windows.
func (c *Config) SetDefaults() {
	if c.DetailIntervalSeconds == 0 {
		c.DetailIntervalSeconds = 30
	}
	if c.BriefStaleSeconds == 0 {
		c.BriefStaleSeconds = 30
	}
}

// Validate checks the windows are usable.
func (c Config) Validate() error {
	if c.DetailIntervalSeconds < 0 || c.BriefStaleSeconds < 0 {
		return errors.New("refetch windows must not be negative")
	}
	return nil
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Coordinator maintains the per-key cache over a Transport. All accessors are
// safe for concurrent use; at most one request per key is in flight at any
// time, and a request for a key that is already being fetched awaits the
// outstanding fetch instead of issuing a duplicate.
type Coordinator struct {
	tr         Transport
	log        logger.Logger
	sink       coremetrics.Sink
	briefStale time.Duration
	interval   time.Duration

	mu     sync.Mutex
	cache  map[Key]entry
	flight singleflight.Group

	now func() time.Time
}

// New creates a Coordinator. A nil sink disables telemetry.
func New(tr Transport, cfg Config, log logger.Logger, sink coremetrics.Sink) *Coordinator {
	cfg.SetDefaults()
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Coordinator{
		tr:         tr,
		log:        log,
		sink:       sink,
		briefStale: time.Duration(cfg.BriefStaleSeconds) * time.Second,
		interval:   time.Duration(cfg.DetailIntervalSeconds) * time.Second,
		cache:      make(map[Key]entry),
		now:        time.Now,
	}
}

// List returns the station list for the given query string. Results are
// cached per query string without an expiry: the map view only refetches when
// its bounds or filters change the key, or after Invalidate.
func (c *Coordinator) List(ctx context.Context, query string) ([]model.StationSummary, error) {
	key := Key{Kind: KindList, Params: query}
	if v, ok := c.lookup(key, 0); ok {
		return v.([]model.StationSummary), nil
	}
	v, err := c.fetch(key, func() (any, error) {
		return c.tr.FetchStationList(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	list := v.([]model.StationSummary)
	if err := c.sink.RecordStationCount(len(list)); err != nil {
		c.log.Warnf("record station count: %v", err)
	}
	return list, nil
}

// Invalidate drops every cached station list, forcing the next List call to
// hit the network. This backs the manual refresh action.
func (c *Coordinator) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.cache {
		if k.Kind == KindList {
			delete(c.cache, k)
		}
	}
}

// Brief returns the summary for one station, cached for the configured stale
// window. Within the window the same id is never re-requested.
func (c *Coordinator) Brief(ctx context.Context, id string) (*model.StationSummary, error) {
	if id == "" {
		return nil, ErrNoStation
	}
	key := Key{Kind: KindBrief, ID: id}
	if v, ok := c.lookup(key, c.briefStale); ok {
		return v.(*model.StationSummary), nil
	}
	v, err := c.fetch(key, func() (any, error) {
		return c.tr.FetchStationBrief(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.StationSummary), nil
}

// Detail fetches the full station payload. Detail results are stored for
// inspection but every call refetches: the interval discipline lives in the
// DetailWatcher, not here.
func (c *Coordinator) Detail(ctx context.Context, id string) (*model.StationDetail, error) {
	if id == "" {
		return nil, ErrNoStation
	}
	key := Key{Kind: KindDetail, ID: id}
	v, err := c.fetch(key, func() (any, error) {
		return c.tr.FetchStationDetail(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.StationDetail), nil
}

// lookup serves a cache entry when present and, for maxAge > 0, younger than
// maxAge. maxAge 0 means entries never expire.
func (c *Coordinator) lookup(key Key, maxAge time.Duration) (any, bool) {
	c.mu.Lock()
	e, ok := c.cache[key]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}
	if maxAge > 0 && c.now().Sub(e.fetchedAt) >= maxAge {
		return nil, false
	}
	c.record(key.Kind, true, false, 0)
	return e.value, true
}

// fetch funnels the request through singleflight so concurrent callers of the
// same key share one network round-trip, then stores the result.
func (c *Coordinator) fetch(key Key, fn func() (any, error)) (any, error) {
	start := c.now()
	v, err, _ := c.flight.Do(key.String(), func() (any, error) {
		v, err := fn()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cache[key] = entry{value: v, fetchedAt: c.now()}
		c.mu.Unlock()
		return v, nil
	})
	c.record(key.Kind, false, err != nil, c.now().Sub(start))
	if err != nil {
		c.log.Warnf("fetch %s: %v", key, err)
		return nil, err
	}
	return v, nil
}

func (c *Coordinator) record(kind Kind, hit, failed bool, d time.Duration) {
	ev := coremetrics.FetchEvent{Kind: string(kind), CacheHit: hit, Failed: failed, Duration: d}
	if err := c.sink.RecordFetch(ev); err != nil {
		c.log.Warnf("record fetch: %v", err)
	}
}

// DetailInterval exposes the configured watcher interval.
func (c *Coordinator) DetailInterval() time.Duration { return c.interval }
