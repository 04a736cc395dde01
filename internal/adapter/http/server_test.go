package http_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/basinflow/etp-compute-service/internal/adapter/http"
	"github.com/basinflow/etp-compute-service/internal/domain"
	"github.com/basinflow/etp-compute-service/internal/etp"
	"github.com/basinflow/etp-compute-service/internal/observability"
	"github.com/basinflow/etp-compute-service/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	ready bool
}

func (m *mockReadiness) Ready() bool { return m.ready }

func newTestServer(ready bool) *httpadapter.Server {
	tfm := pipeline.NewTransformer(domain.Defaults{
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
	}, slog.Default(), observability.NewMetricsForTesting())
	return httpadapter.NewServer(":0", &mockReadiness{ready: ready}, tfm, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(true)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(true)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(true)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestComputeEndpoint(t *testing.T) {
	srv := newTestServer(true)
	payload := `{"model":"fao_daily","series":{"max_temperature":{"1":20.0,"2":25.0},"min_temperature":{"1":10.0,"2":15.0}}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/compute", bytes.NewBufferString(payload))

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.ResultEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, domain.ModelFAODaily, result.Model)
	assert.Equal(t, "mm day-1", result.Unit)
	require.Len(t, result.Etp, 2)
	assert.InDelta(t, 1.4081692411028932, result.Etp[etp.StationID(1)], 1e-12)
	assert.InDelta(t, 1.6249397886156274, result.Etp[etp.StationID(2)], 1e-12)
}

func TestComputeEndpointRejectsInvalidMessage(t *testing.T) {
	srv := newTestServer(true)

	tests := []struct {
		name    string
		payload string
		status  int
	}{
		{name: "malformed JSON", payload: `{not json`, status: http.StatusBadRequest},
		{name: "unknown model", payload: `{"model":"hargreaves","series":{"temperature":{"1":20}}}`, status: http.StatusBadRequest},
		{name: "missing series", payload: `{"model":"fao_daily"}`, status: http.StatusBadRequest},
		{name: "empty driving series", payload: `{"model":"fao_daily","series":{"min_temperature":{"1":10}}}`, status: http.StatusUnprocessableEntity},
		{name: "pt hourly without timestep", payload: `{"model":"pt_hourly","series":{"temperature":{"1":20}}}`, status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/compute", bytes.NewBufferString(tt.payload))

			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

var _ httpadapter.Computer = (*pipeline.EtpTransformer)(nil)
