package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/datapulse/identity-api/internal/api/metrics"
	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// AuditDispatcher persists authentication audit events off the request path.
// Events are sharded to a fixed set of workers by subject, so records for the
// same principal are written in the order they were recorded. A full worker
// channel drops the event: auditing must never block or fail a login.
type AuditDispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
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
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event to the worker responsible for its subject.
// Implements ports.AuditRecorder. Never blocks.
func (d *AuditDispatcher) Record(event domain.AuditEvent) {
	shard := d.shardIndex(event.Subject)
	select {
	case d.workers[shard] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(shard)).Set(float64(len(d.workers[shard])))
	default:
		d.log.Warn().Str("action", event.Action).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a subject deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			// Detached context: a cancelled request must not lose its record.
			insertCtx, cancel := context.WithTimeout(context.Background(), insertTimeout)
			if err := d.repo.Insert(insertCtx, event); err != nil {
				d.log.Error().Err(err).
					Str("action", event.Action).
					Int("worker_id", id).
					Msg("audit event persistence failed")
			}
			cancel()
		}
	}
}
