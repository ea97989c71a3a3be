package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/devops-dashboard/dashboard-api/internal/api/metrics"
	"github.com/devops-dashboard/dashboard-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes status reports to a fixed set of workers using consistent
// hashing on the tool name, guaranteeing per-tool report ordering.
type Dispatcher struct {
	workers []chan ports.StatusReportInput
	service ports.StatusService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.StatusService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.StatusReportInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.StatusReportInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a report to the worker responsible for its tool.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(report ports.StatusReportInput) {
	i := d.shardIndex(string(report.Tool))
	d.workers[i] <- report
	metrics.ReportsQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a tool name deterministically to a worker index.
func (d *Dispatcher) shardIndex(tool string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tool))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.StatusReportInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case report, ok := <-ch:
			if !ok {
				return
			}
			metrics.ReportsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Process(ctx, report); err != nil {
				d.log.Error().Err(err).
					Str("tool", string(report.Tool)).
					Int("worker_id", id).
					Msg("report processing failed")
			}
		}
	}
}
