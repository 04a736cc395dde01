package domain

import (
	"context"
	"time"

	"github.com/basinflow/etp-compute-service/internal/etp"
)

// ModelKind selects one of the four ET formula variants.
type ModelKind string

const (
	ModelFAODaily              ModelKind = "fao_daily"
	ModelFAOHourly             ModelKind = "fao_hourly"
	ModelPriestleyTaylorDaily  ModelKind = "pt_daily"
	ModelPriestleyTaylorHourly ModelKind = "pt_hourly"
)

// Unit returns the output unit for the model's cadence.
func (m ModelKind) Unit() string {
	switch m {
	case ModelFAOHourly, ModelPriestleyTaylorHourly:
		return "mm hour-1"
	default:
		return "mm day-1"
	}
}

// Variable names used as keys of ForcingMessage.Series.
const (
	VarNetRadiation     = "net_radiation"
	VarWind             = "wind"
	VarMaxTemperature   = "max_temperature"
	VarMinTemperature   = "min_temperature"
	VarTemperature      = "temperature"
	VarRelativeHumidity = "relative_humidity"
	VarPressure         = "pressure"
)

// Parameters carries optional per-message overrides of the configured
// Priestley-Taylor scalars. Pointers distinguish "not supplied" from zero.
type Parameters struct {
	Alpha    *float64 `json:"alpha,omitempty" validate:"omitempty,gt=0,lte=3"`
	GMorning *float64 `json:"g_morning,omitempty" validate:"omitempty,gte=0,lte=1"`
	GNight   *float64 `json:"g_night,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// ForcingMessage is one timestep of per-station meteorological forcing for
// one model variant, as published on the source topic by the collectors.
// Series maps variable names (Var* constants) to per-station observations;
// any variable may be absent. Timestep is required for the hourly
// Priestley-Taylor model only.
type ForcingMessage struct {
	Model      ModelKind             `json:"model" validate:"required,oneof=fao_daily fao_hourly pt_daily pt_hourly"`
	Timestep   string                `json:"timestep,omitempty"`
	Series     map[string]etp.Series `json:"series" validate:"required"`
	Parameters *Parameters           `json:"parameters,omitempty"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ResultEvent is one timestep of computed reference evapotranspiration.
type ResultEvent struct {
	ID          string     `json:"id"`
	Model       ModelKind  `json:"model"`
	Timestep    string     `json:"timestep,omitempty"`
	Unit        string     `json:"unit"`
	Etp         etp.Series `json:"etp"`
	ProcessedAt time.Time  `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
