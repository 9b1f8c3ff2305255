// Package viewer implements the best-effort viewer-count lifecycle. The
// server increments a station's viewer count when its detail payload is
// fetched; the session's only job is to send the matching decrement when the
// view goes away. Delivery is attempted, never guaranteed, and never retried.
package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"chargecast/infra/logger"
)

// Decrementer delivers the viewer-count decrement for a station.
type Decrementer interface {
	DecrementViewerCount(ctx context.Context, stationID string) error
}

const deliverTimeout = 5 * time.Second

// Session tracks one open detail view. Two independent triggers can fire the
// decrement: explicit teardown (Close) and the environment-unload signal
// (WatchUnload). Whichever fires first wins; the decrement is sent at most
// once per session instance.
type Session struct {
	id        string
	stationID string
	dec       Decrementer
	log       logger.Logger

	once sync.Once
	done chan struct{}
}

// NewSession starts a lifecycle for the given station.
func NewSession(stationID string, dec Decrementer, log logger.Logger) *Session {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Session{
		id:        uuid.NewString(),
		stationID: stationID,
		dec:       dec,
		log:       log,
		done:      make(chan struct{}),
	}
}

// StationID returns the station this session belongs to.
func (s *Session) StationID() string { return s.stationID }

// WatchUnload registers the environment-unload trigger: when unload closes,
// the decrement fires unless the session was already closed.
func (s *Session) WatchUnload(unload <-chan struct{}) {
	go func() {
		select {
		case <-unload:
			s.deliver("unload")
		case <-s.done:
		}
	}()
}

// Close is the teardown trigger. Safe to call more than once.
func (s *Session) Close() {
	s.deliver("teardown")
}

func (s *Session) deliver(trigger string) {
	s.once.Do(func() {
		close(s.done)
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		defer cancel()
		if err := s.dec.DecrementViewerCount(ctx, s.stationID); err != nil {
			// Fire and forget: failures are logged, never retried, never
			// surfaced to the user.
			s.log.Warnf("viewer decrement failed: session=%s station=%s trigger=%s: %v",
				s.id, s.stationID, trigger, err)
			return
		}
		s.log.Debugw("viewer decrement sent", map[string]any{
			"session": s.id,
			"station": s.stationID,
			"trigger": trigger,
		})
	})
}
