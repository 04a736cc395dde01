package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/basinflow/etp-compute-service/internal/domain"
	"github.com/basinflow/etp-compute-service/internal/etp"
	"github.com/basinflow/etp-compute-service/internal/observability"
	"github.com/basinflow/etp-compute-service/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	events []domain.RawEvent
	index  atomic.Int64
}

func (m *mockExtractor) Extract(ctx context.Context) (domain.RawEvent, error) {
	i := int(m.index.Add(1) - 1)
	if i >= len(m.events) {
		// block until context cancelled to simulate waiting for messages
		<-ctx.Done()
		return domain.RawEvent{}, ctx.Err()
	}
	return m.events[i], nil
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	if m.err != nil {
		return domain.OutputEvent{}, m.err
	}
	return domain.OutputEvent{Key: raw.Key, Value: raw.Value}, nil
}

type mockLoader struct {
	loaded []domain.OutputEvent
	err    error
}

func (m *mockLoader) Load(_ context.Context, event domain.OutputEvent) error {
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, event)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func testDefaults() domain.Defaults {
	return domain.Defaults{
		FAODailyNetRadiation:  2.0,
		FAOHourlyNetRadiation: 2.0,
		DailyNetRadiation:     300.0,
		HourlyNetRadiation:    100.0,
		Wind:                  2.0,
		MaxTemp:               15.0,
		MinTemp:               0.0,
		Temp:                  15.0,
		RelativeHumidity:      70.0,
		Pressure:              100.0,
		Alpha:                 1.26,
		GMorning:              0.35,
		GNight:                0.75,
	}
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	raw := makeRawEvent(t, "fao_daily", "")

	ext := &mockExtractor{events: []domain.RawEvent{raw}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Len(t, ldr.loaded, 1)
	assert.Equal(t, raw.Value, ldr.loaded[0].Value)
	assert.True(t, p.Ready())
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{} // no events, will block
	tfm := &mockTransformer{}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
}

func TestPipeline_Run_TransformError(t *testing.T) {
	raw := makeRawEvent(t, "fao_daily", "")

	ext := &mockExtractor{events: []domain.RawEvent{raw}}
	tfm := &mockTransformer{err: errors.New("bad data")}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
	assert.False(t, p.Ready())
}

func TestPipeline_Run_TransformErrorStillCommits(t *testing.T) {
	commitCalled := false

	raw := makeRawEvent(t, "fao_daily", "")
	raw.Topic = "forcing-snapshots"
	raw.Commit = func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{events: []domain.RawEvent{raw}}
	tfm := &mockTransformer{err: errors.New("bad data")}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, commitCalled)
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	commitCalled := false

	raw := makeRawEvent(t, "fao_daily", "")
	raw.Topic = "forcing-snapshots"
	raw.Commit = func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{events: []domain.RawEvent{raw}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, commitCalled)
}

func TestPipeline_Run_LoadErrorDoesNotCommit(t *testing.T) {
	commitCalled := false

	raw := makeRawEvent(t, "fao_daily", "")
	raw.Commit = func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{events: []domain.RawEvent{raw}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{err: errors.New("broker unavailable")}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.False(t, commitCalled)
	assert.False(t, p.Ready())
}

func TestEtpTransformer_Transform(t *testing.T) {
	raw := makeRawEvent(t, "fao_daily", "")

	tfm := pipeline.NewTransformer(testDefaults(), slog.Default(), newTestMetrics())
	out, err := tfm.Transform(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "fao_daily", out.Headers["model"])

	var result domain.ResultEvent
	require.NoError(t, json.Unmarshal(out.Value, &result))
	assert.Equal(t, domain.ModelFAODaily, result.Model)
	assert.Equal(t, "mm day-1", result.Unit)
	require.Len(t, result.Etp, 2)
	assert.InDelta(t, 1.4081692411028932, result.Etp[1], 1e-12)
	assert.InDelta(t, 1.6249397886156274, result.Etp[2], 1e-12)
}

func TestEtpTransformer_Transform_InvalidPayload(t *testing.T) {
	tfm := pipeline.NewTransformer(testDefaults(), slog.Default(), newTestMetrics())

	_, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestEtpTransformer_Transform_EmptyDrivingSeries(t *testing.T) {
	raw := domain.RawEvent{
		Value: []byte(`{"model":"fao_daily","series":{"min_temperature":{"1":5.0}}}`),
	}

	tfm := pipeline.NewTransformer(testDefaults(), slog.Default(), newTestMetrics())

	_, err := tfm.Transform(context.Background(), raw)
	require.ErrorIs(t, err, etp.ErrNoDrivingSeries)
}

func TestEtpTransformer_Compute(t *testing.T) {
	tfm := pipeline.NewTransformer(testDefaults(), slog.Default(), newTestMetrics())

	msg := domain.ForcingMessage{
		Model:  domain.ModelPriestleyTaylorDaily,
		Series: map[string]etp.Series{domain.VarTemperature: {1: 20.0}},
	}

	result, err := tfm.Compute(context.Background(), msg)
	require.NoError(t, err)
	assert.InDelta(t, 9.125280154191511, result.Etp[1], 1e-12)
}

// --- helpers ---

func makeRawEvent(t *testing.T, model, timestep string) domain.RawEvent {
	t.Helper()
	msg := domain.ForcingMessage{
		Model:    domain.ModelKind(model),
		Timestep: timestep,
		Series: map[string]etp.Series{
			domain.VarMaxTemperature: {1: 20.0, 2: 25.0},
			domain.VarMinTemperature: {1: 10.0, 2: 15.0},
		},
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	return domain.RawEvent{
		Key:   []byte(model),
		Value: data,
	}
}
