// Package audit persists security-relevant events (logins, admin mutations)
// asynchronously, so request handling never waits on the audit store.
package audit

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/modavn/storefront-api/internal/api/metrics"
	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Sink routes audit events to a fixed set of workers using consistent hashing
// on the subject user id, guaranteeing per-user event ordering in the trail.
type Sink struct {
	workers []chan domain.ActivityEvent
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewSink creates a Sink with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSink(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Sink {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Sink{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (s *Sink) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event without blocking. When the shard's buffer is full
// the event is dropped with a warning; the audit trail is best-effort.
func (s *Sink) Record(event domain.ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	select {
	case s.workers[s.shardIndex(event.UserID)] <- event:
	default:
		metrics.AuditDroppedTotal.Inc()
		s.log.Warn().Str("event_type", string(event.Type)).Int64("user_id", event.UserID).
			Msg("audit sink full, event dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (s *Sink) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32()) % len(s.workers)
}

func (s *Sink) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			insertCtx, cancel := context.WithTimeout(context.Background(), insertTimeout)
			if err := s.repo.Insert(insertCtx, &event); err != nil {
				s.log.Error().Err(err).
					Str("event_type", string(event.Type)).
					Int("worker_id", id).
					Msg("audit insert failed")
			}
			cancel()
		}
	}
}
