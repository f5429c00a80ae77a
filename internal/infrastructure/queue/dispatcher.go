package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/aicv/cv-service/internal/core/domain"
	"github.com/aicv/cv-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher writes generation audit records off the request path. Records
// are routed to a fixed set of workers by consistent hashing on the account
// id, preserving per-account ordering.
type Dispatcher struct {
	workers []chan domain.GenerationRecord
	repo    ports.GenerationRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.GenerationRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.GenerationRecord, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.GenerationRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its account. When the
// worker's buffer is full the record is dropped with a warning; the audit
// trail is best effort and must never stall a generation response.
func (d *Dispatcher) Enqueue(record domain.GenerationRecord) {
	select {
	case d.workers[d.shardIndex(record.AccountID)] <- record:
	default:
		d.log.Warn().Str("account_id", record.AccountID).Msg("audit queue full, record dropped")
	}
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.GenerationRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &record); err != nil {
				d.log.Error().Err(err).
					Str("account_id", record.AccountID).
					Int("worker_id", id).
					Msg("audit record insert failed")
			}
		}
	}
}
