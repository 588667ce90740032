package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dbaops/inventory-api/internal/api/metrics"
	"github.com/dbaops/inventory-api/internal/core/domain"
	"github.com/dbaops/inventory-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	persistTimeout = 5 * time.Second
)

// Dispatcher routes audit events to a fixed set of workers using
// consistent hashing on the table name, preserving per-table event
// ordering. Audit persistence failures are logged, never surfaced to
// the request that produced the event.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Emit sends an event to the worker responsible for its table. A full
// worker channel drops the event with a log line rather than blocking
// the request that produced it.
func (d *Dispatcher) Emit(event domain.AuditEvent) {
	idx := d.shardIndex(event.Table)
	select {
	case d.workers[idx] <- event:
	default:
		d.log.Warn().
			Str("table", event.Table).
			Str("operation", string(event.Operation)).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a table name deterministically to a worker index.
func (d *Dispatcher) shardIndex(table string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(table))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.persist(id, ch, event)
		}
	}
}

// drain flushes the events still buffered when the worker's context is
// cancelled, so a clean shutdown loses nothing already accepted.
func (d *Dispatcher) drain(id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case event := <-ch:
			d.persist(id, ch, event)
		default:
			return
		}
	}
}

// persist writes one event under its own deadline, detached from the
// worker context so draining after cancellation still completes.
func (d *Dispatcher) persist(id int, ch <-chan domain.AuditEvent, event domain.AuditEvent) {
	persistCtx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	err := d.repo.InsertEvent(persistCtx, event)
	cancel()
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
	if err != nil {
		d.log.Error().Err(err).
			Str("table", event.Table).
			Str("operation", string(event.Operation)).
			Int("worker_id", id).
			Msg("audit event persistence failed")
	}
}
