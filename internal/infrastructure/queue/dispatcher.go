package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/homerent/rental-api/internal/core/ports"
	"github.com/homerent/rental-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrNotStarted is returned by Enqueue before Start has been called.
var ErrNotStarted = errors.New("rating dispatcher not started")

// Dispatcher routes agent rating refreshes to a fixed set of workers, sharded
// by agent id so refreshes for one agent never run concurrently.
type Dispatcher struct {
	workers []chan ports.AgentRatingEvent
	service ports.RatingService
	log     zerolog.Logger
	started atomic.Bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.RatingService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AgentRatingEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AgentRatingEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
// Start must be called once, before the first Enqueue.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	d.started.Store(true)
}

// Enqueue hands event to the worker owning its agent. It blocks while that
// worker's buffer is full and gives up when ctx is done.
func (d *Dispatcher) Enqueue(ctx context.Context, event ports.AgentRatingEvent) error {
	if !d.started.Load() {
		return ErrNotStarted
	}
	idx := d.shardIndex(event.AgentID)
	select {
	case d.workers[idx] <- event:
		metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an agent id deterministically to a worker index.
func (d *Dispatcher) shardIndex(agentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(agentID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AgentRatingEvent) {
	depth := metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			// Request contexts are gone by now; refreshes run under the worker context.
			if err := d.service.Refresh(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("agent_id", event.AgentID).
					Int("worker_id", id).
					Msg("rating refresh failed")
			}
		}
	}
}
