package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/basinflow/etp-compute-service/internal/etp"
)

// Defaults carries the configured fallback scalars the engines substitute
// for missing observations, plus the Priestley-Taylor coefficients. The FAO
// radiation and pressure defaults are declared post-conversion; the
// Priestley-Taylor radiation defaults are raw W/m². See the etp package doc.
type Defaults struct {
	FAODailyNetRadiation  float64 // MJ/m²/day (FAO daily)
	FAOHourlyNetRadiation float64 // MJ/m²/hour (FAO hourly)
	DailyNetRadiation     float64 // W/m² (Priestley-Taylor daily)
	HourlyNetRadiation    float64 // W/m² (Priestley-Taylor hourly)
	Wind                  float64 // m/s
	MaxTemp               float64 // °C
	MinTemp               float64 // °C
	Temp                  float64 // °C
	RelativeHumidity      float64 // %
	Pressure              float64 // kPa

	Alpha    float64
	GMorning float64
	GNight   float64
}

// Compute resolves the model variant of msg, runs the engine, and wraps the
// per-station ET values in a ResultEvent. It is pure except for the
// ProcessedAt timestamp, which comes from the package clock.
func Compute(msg ForcingMessage, defaults Defaults) (ResultEvent, error) {
	engine, err := buildEngine(msg, defaults)
	if err != nil {
		return ResultEvent{}, err
	}

	values, err := engine.Compute()
	if err != nil {
		return ResultEvent{}, fmt.Errorf("compute %s: %w", msg.Model, err)
	}

	return ResultEvent{
		ID:          resultID(msg.Model, msg.Timestep, values),
		Model:       msg.Model,
		Timestep:    msg.Timestep,
		Unit:        msg.Model.Unit(),
		Etp:         values,
		ProcessedAt: clock.Now(),
	}, nil
}

// buildEngine maps a forcing message onto the engine variant it names,
// wiring configured defaults and any per-message parameter overrides.
func buildEngine(msg ForcingMessage, d Defaults) (etp.Engine, error) {
	s := msg.Series

	switch msg.Model {
	case ModelFAODaily:
		return etp.FAODaily{
			MaxTemp:          s[VarMaxTemperature],
			MinTemp:          s[VarMinTemperature],
			NetRadiation:     s[VarNetRadiation],
			Wind:             s[VarWind],
			RelativeHumidity: s[VarRelativeHumidity],
			Pressure:         s[VarPressure],

			DefaultMaxTemp:          d.MaxTemp,
			DefaultMinTemp:          d.MinTemp,
			DefaultNetRadiation:     d.FAODailyNetRadiation,
			DefaultWind:             d.Wind,
			DefaultRelativeHumidity: d.RelativeHumidity,
			DefaultPressure:         d.Pressure,
		}, nil

	case ModelFAOHourly:
		return etp.FAOHourly{
			NetRadiation:     s[VarNetRadiation],
			Temp:             s[VarTemperature],
			Wind:             s[VarWind],
			RelativeHumidity: s[VarRelativeHumidity],
			Pressure:         s[VarPressure],

			DefaultNetRadiation:     d.FAOHourlyNetRadiation,
			DefaultTemp:             d.Temp,
			DefaultWind:             d.Wind,
			DefaultRelativeHumidity: d.RelativeHumidity,
			DefaultPressure:         d.Pressure,
		}, nil

	case ModelPriestleyTaylorDaily, ModelPriestleyTaylorHourly:
		alpha, gMorning, gNight := d.Alpha, d.GMorning, d.GNight
		if p := msg.Parameters; p != nil {
			if p.Alpha != nil {
				alpha = *p.Alpha
			}
			if p.GMorning != nil {
				gMorning = *p.GMorning
			}
			if p.GNight != nil {
				gNight = *p.GNight
			}
		}
		return etp.PriestleyTaylor{
			Temp:         s[VarTemperature],
			NetRadiation: s[VarNetRadiation],
			Pressure:     s[VarPressure],

			Alpha:    alpha,
			GMorning: gMorning,
			GNight:   gNight,
			Hourly:   msg.Model == ModelPriestleyTaylorHourly,
			Timestep: msg.Timestep,

			DefaultTemp:               d.Temp,
			DefaultDailyNetRadiation:  d.DailyNetRadiation,
			DefaultHourlyNetRadiation: d.HourlyNetRadiation,
			DefaultPressure:           d.Pressure,
		}, nil

	default:
		return nil, fmt.Errorf("unknown model kind %q", msg.Model)
	}
}

// resultID produces a deterministic ID from the result's key fields.
// Reprocessing the same timestep for the same stations yields the same ID,
// so downstream sinks can upsert idempotently on replay.
func resultID(model ModelKind, timestep string, values etp.Series) string {
	ids := make([]int, 0, len(values))
	for id := range values {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var b strings.Builder
	b.WriteString(string(model))
	b.WriteByte('|')
	b.WriteString(timestep)
	for _, id := range ids {
		fmt.Fprintf(&b, "|%d", id)
	}

	hash := sha256.Sum256([]byte(b.String()))
	return string(model) + "-" + hex.EncodeToString(hash[:8])
}
