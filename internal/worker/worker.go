// Package worker moves recorded data from the simulation queues into the
// storage backend so the tick loop never blocks on IO.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/pitchside/engine/internal/influx"
	"github.com/pitchside/engine/internal/model"
	"github.com/pitchside/engine/internal/queue"
	"github.com/pitchside/engine/internal/storage"
)

// Dependencies holds everything the recorder needs.
type Dependencies struct {
	Backend storage.Backend
	Ticks   *queue.Queue[model.BallTick]
	Events  *queue.Queue[model.PossessionEvent]
	Logger  *slog.Logger

	// Influx is optional; when set, possession events are mirrored there.
	Influx   *influx.Manager
	MatchTag string
}

// Recorder periodically drains the queues into the storage backend.
type Recorder struct {
	deps     Dependencies
	interval time.Duration

	// OTEL metrics
	recorded    metric.Int64Counter
	writeErrors metric.Int64Counter
	queueDepth  metric.Int64ObservableGauge

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewRecorder creates a recorder flushing at the given interval.
// Uses the global OTel meter for metrics (no-op if not configured).
func NewRecorder(deps Dependencies, interval time.Duration) (*Recorder, error) {
	if deps.Backend == nil {
		return nil, fmt.Errorf("recorder requires a storage backend")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("flush interval must be positive, got %v", interval)
	}

	r := &Recorder{
		deps:     deps,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	m := meter()

	var err error
	r.recorded, err = m.Int64Counter(
		"recorder.rows.written",
		metric.WithDescription("Total rows handed to the storage backend"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recorded counter: %w", err)
	}

	r.writeErrors, err = m.Int64Counter(
		"recorder.write.errors",
		metric.WithDescription("Total failed backend writes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating write error counter: %w", err)
	}

	r.queueDepth, err = m.Int64ObservableGauge(
		"recorder.queue.depth",
		metric.WithDescription("Current number of buffered rows per queue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queue depth gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(r.queueDepth, int64(r.deps.Ticks.Len()),
				metric.WithAttributes(attribute.String("queue", "ticks")))
			o.ObserveInt64(r.queueDepth, int64(r.deps.Events.Len()),
				metric.WithAttributes(attribute.String("queue", "events")))
			return nil
		},
		r.queueDepth,
	)
	if err != nil {
		return nil, fmt.Errorf("registering queue depth callback: %w", err)
	}

	return r, nil
}

// Start launches the flush loop.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true
	go r.loop()
}

func (r *Recorder) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	for {
		select {
		case <-ticker.C:
			if err := r.Flush(); err != nil {
				r.deps.Logger.Error("Recorder flush failed", "error", err)
			}
		case <-r.stopCh:
			// Final drain so a short match loses nothing.
			if err := r.Flush(); err != nil {
				r.deps.Logger.Error("Recorder final flush failed", "error", err)
			}
			return
		}
	}
}

// Flush drains both queues into the backend. Safe to call concurrently
// with Push on the queues.
func (r *Recorder) Flush() error {
	ctx := context.Background()

	for _, tick := range r.deps.Ticks.Drain() {
		t := tick
		if err := r.deps.Backend.RecordBallTick(&t); err != nil {
			r.writeErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("row", "ball_tick")))
			return fmt.Errorf("record ball tick frame %d: %w", t.Frame, err)
		}
		r.recorded.Add(ctx, 1, metric.WithAttributes(attribute.String("row", "ball_tick")))
	}

	for _, event := range r.deps.Events.Drain() {
		e := event
		if err := r.deps.Backend.RecordPossessionEvent(&e); err != nil {
			r.writeErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("row", "possession_event")))
			return fmt.Errorf("record possession event frame %d: %w", e.Frame, err)
		}
		r.recorded.Add(ctx, 1, metric.WithAttributes(attribute.String("row", "possession_event")))

		if r.deps.Influx != nil {
			if err := r.deps.Influx.WritePossessionEvent(ctx, r.deps.MatchTag, e); err != nil {
				r.deps.Logger.Warn("Influx possession write failed", "error", err)
			}
		}
	}

	return nil
}

// Stop drains the queues one last time and waits for the loop to exit.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

// DBWriteDurationProvider is an optional interface that backends can
// implement to expose their last DB write duration for monitoring.
type DBWriteDurationProvider interface {
	GetLastDBWriteDuration() time.Duration
}

// GetLastDBWriteDuration returns the duration of the last backend write
// cycle, or 0 if the backend doesn't track it.
func (r *Recorder) GetLastDBWriteDuration() time.Duration {
	if p, ok := r.deps.Backend.(DBWriteDurationProvider); ok {
		return p.GetLastDBWriteDuration()
	}
	return 0
}
