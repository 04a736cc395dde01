package pipeline

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/basinflow/etp-compute-service/internal/domain"
	"github.com/basinflow/etp-compute-service/internal/observability"
)

// Extractor reads the next raw event from the source.
type Extractor interface {
	Extract(ctx context.Context) (domain.RawEvent, error)
}

// Transformer converts a raw event into an output event.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// Loader writes an output event to the destination.
type Loader interface {
	Load(ctx context.Context, event domain.OutputEvent) error
}

// Pipeline orchestrates the extract-compute-load loop.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
	}
}

// Ready reports whether the pipeline has loaded at least one result.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run executes the compute loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started")
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during Kafka outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processNext(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processNext runs one extract-transform-load cycle. Returns false if the
// pipeline should stop.
func (p *Pipeline) processNext(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	p.metrics.TimestepsConsumed.Inc()
	*backoff = 200 * time.Millisecond

	out, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		p.logger.Warn("compute failed, skipping message",
			"error", err,
			"topic", raw.Topic,
			"partition", raw.Partition,
			"offset", raw.Offset,
		)
		p.metrics.ComputeErrors.Inc()
		// Skipped messages are still committed so a poison message cannot
		// wedge the consumer group on restart.
		p.commitOffset(ctx, raw)
		return true
	}

	if err := p.loader.Load(ctx, out); err != nil {
		p.logger.Error("load failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	p.metrics.ResultsProduced.Inc()
	p.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	p.commitOffset(ctx, raw)
	p.ready.Store(true)
	return true
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
