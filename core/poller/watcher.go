package poller

import (
	"context"
	"sync"
	"time"

	"chargecast/core/model"
	"chargecast/infra/logger"
	"chargecast/internal/eventbus"
)

// DetailUpdate is published after every successful detail refetch of the
// currently watched station.
type DetailUpdate struct {
	StationID  string
	Generation uint64
	Detail     *model.StationDetail
}

// DetailWatcher drives the fixed-interval detail refetch for the selected
// station. Selecting a new id, or the empty id, disables the previous loop:
// an in-flight response that lands after the switch belongs to a dead
// generation and is never published, so a closed view cannot be resurrected
// by a late result.
type DetailWatcher struct {
	coord    *Coordinator
	bus      *eventbus.Bus[DetailUpdate]
	log      logger.Logger
	interval time.Duration

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewDetailWatcher creates a watcher publishing on bus at the coordinator's
// configured interval.
func NewDetailWatcher(coord *Coordinator, bus *eventbus.Bus[DetailUpdate], log logger.Logger) *DetailWatcher {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &DetailWatcher{coord: coord, bus: bus, log: log, interval: coord.DetailInterval()}
}

// Select switches the watched station and returns the new generation. An
// empty id stops watching entirely. The previous loop's interest is cancelled
// logically; any network call it still has in flight finishes in the
// coordinator but its result is dropped at the generation check.
func (w *DetailWatcher) Select(ctx context.Context, id string) uint64 {
	w.mu.Lock()
	w.gen++
	gen := w.gen
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	if id == "" {
		w.mu.Unlock()
		return gen
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()

	go w.loop(runCtx, id, gen)
	return gen
}

// Close stops any running loop.
func (w *DetailWatcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *DetailWatcher) loop(ctx context.Context, id string, gen uint64) {
	w.refetch(ctx, id, gen)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.refetch(ctx, id, gen)
		}
	}
}

func (w *DetailWatcher) refetch(ctx context.Context, id string, gen uint64) {
	detail, err := w.coord.Detail(ctx, id)
	if err != nil {
		// Transport failure degrades to "no data"; the interval retries.
		w.log.Warnf("detail refetch %s: %v", id, err)
		return
	}
	if !w.live(gen) {
		w.log.Debugw("dropping stale detail result", map[string]any{
			"station":    id,
			"generation": gen,
		})
		return
	}
	w.bus.Publish(DetailUpdate{StationID: id, Generation: gen, Detail: detail})
}

func (w *DetailWatcher) live(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gen == gen
}
