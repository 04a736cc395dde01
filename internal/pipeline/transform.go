package pipeline

import (
	"context"
	"log/slog"

	"github.com/basinflow/etp-compute-service/internal/domain"
	"github.com/basinflow/etp-compute-service/internal/observability"
)

// EtpTransformer implements Transformer by parsing a forcing message, running
// the model it names, and serializing the result.
type EtpTransformer struct {
	defaults domain.Defaults
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates an EtpTransformer with the configured engine
// defaults.
func NewTransformer(defaults domain.Defaults, logger *slog.Logger, metrics *observability.Metrics) *EtpTransformer {
	return &EtpTransformer{
		defaults: defaults,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *EtpTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	msg, err := domain.ParseForcingMessage(raw.Value)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	result, err := t.Compute(ctx, msg)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	return domain.SerializeResult(result)
}

// Compute runs the model named by msg against the configured defaults. It is
// shared by the Kafka path and the synchronous HTTP endpoint.
func (t *EtpTransformer) Compute(_ context.Context, msg domain.ForcingMessage) (domain.ResultEvent, error) {
	result, err := domain.Compute(msg, t.defaults)
	if err != nil {
		return domain.ResultEvent{}, err
	}

	t.metrics.StationsPerTimestep.Observe(float64(len(result.Etp)))
	t.metrics.ResultsByModel.WithLabelValues(string(result.Model)).Inc()
	t.logger.Debug("computed timestep",
		"model", result.Model,
		"timestep", result.Timestep,
		"stations", len(result.Etp),
	)
	return result, nil
}
