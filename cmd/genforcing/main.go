// Command genforcing generates synthetic forcing message fixtures and their
// expected result events for all four model variants. It uses the actual
// domain package so the expected outputs match real pipeline behavior, and a
// seeded random source so fixtures are reproducible.
//
// Usage:
//
//	go run ./cmd/genforcing -out data/fixtures -stations 25 -seed 42
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/basinflow/etp-compute-service/internal/domain"
	"github.com/basinflow/etp-compute-service/internal/etp"
)

// fixtureClock pins ProcessedAt so regenerated fixtures only change when the
// inputs or the models change.
var fixtureClock = time.Date(2024, time.July, 15, 6, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for fixture files")
	stations := flag.Int("stations", 25, "number of stations per message")
	seed := flag.Uint64("seed", 42, "random seed")
	missing := flag.Float64("missing", 0.1, "fraction of observations replaced by the -9999 sentinel")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(fixtureClock))
	defer domain.SetClock(nil)

	gen := newGenerator(*seed, *stations, *missing)
	defaults := stockDefaults()

	for _, model := range []domain.ModelKind{
		domain.ModelFAODaily,
		domain.ModelFAOHourly,
		domain.ModelPriestleyTaylorDaily,
		domain.ModelPriestleyTaylorHourly,
	} {
		msg := gen.message(model)

		result, err := domain.Compute(msg, defaults)
		if err != nil {
			return fmt.Errorf("compute %s: %w", model, err)
		}

		if err := writeJSON(filepath.Join(*out, string(model)+"_forcing.json"), msg); err != nil {
			return fmt.Errorf("writing %s forcing fixture: %w", model, err)
		}
		if err := writeJSON(filepath.Join(*out, string(model)+"_result.json"), result); err != nil {
			return fmt.Errorf("writing %s result fixture: %w", model, err)
		}
		log.Printf("%s: %d stations, id=%s", model, len(result.Etp), result.ID)
	}

	return nil
}

// generator draws station observations from per-variable normal distributions
// typical of a temperate mid-summer day.
type generator struct {
	stations int
	missing  float64
	uniform  *rand.Rand

	temp     distuv.Normal
	maxTemp  distuv.Normal
	minTemp  distuv.Normal
	netRad   distuv.Normal
	wind     distuv.Normal
	humidity distuv.Normal
	pressure distuv.Normal
}

func newGenerator(seed uint64, stations int, missing float64) *generator {
	src := rand.NewSource(seed)
	return &generator{
		stations: stations,
		missing:  missing,
		uniform:  rand.New(rand.NewSource(seed + 1)),

		temp:     distuv.Normal{Mu: 22, Sigma: 4, Src: src},
		maxTemp:  distuv.Normal{Mu: 28, Sigma: 4, Src: src},
		minTemp:  distuv.Normal{Mu: 14, Sigma: 3, Src: src},
		netRad:   distuv.Normal{Mu: 350, Sigma: 80, Src: src},
		wind:     distuv.Normal{Mu: 2.5, Sigma: 1, Src: src},
		humidity: distuv.Normal{Mu: 60, Sigma: 12, Src: src},
		pressure: distuv.Normal{Mu: 98, Sigma: 2, Src: src},
	}
}

func (g *generator) message(model domain.ModelKind) domain.ForcingMessage {
	msg := domain.ForcingMessage{
		Model:  model,
		Series: map[string]etp.Series{},
	}

	switch model {
	case domain.ModelFAODaily:
		msg.Series[domain.VarMaxTemperature] = g.series(g.maxTemp)
		msg.Series[domain.VarMinTemperature] = g.series(g.minTemp)
		msg.Series[domain.VarNetRadiation] = g.series(g.netRad)
		msg.Series[domain.VarWind] = g.series(g.wind)
		msg.Series[domain.VarRelativeHumidity] = g.series(g.humidity)
		msg.Series[domain.VarPressure] = g.series(g.pressure)
	case domain.ModelFAOHourly:
		msg.Timestep = "202407151200"
		msg.Series[domain.VarNetRadiation] = g.series(g.netRad)
		msg.Series[domain.VarTemperature] = g.series(g.temp)
		msg.Series[domain.VarWind] = g.series(g.wind)
		msg.Series[domain.VarRelativeHumidity] = g.series(g.humidity)
		msg.Series[domain.VarPressure] = g.series(g.pressure)
	case domain.ModelPriestleyTaylorDaily:
		msg.Series[domain.VarTemperature] = g.series(g.temp)
		msg.Series[domain.VarNetRadiation] = g.series(g.netRad)
		msg.Series[domain.VarPressure] = g.series(g.pressure)
	case domain.ModelPriestleyTaylorHourly:
		msg.Timestep = "202407151200"
		msg.Series[domain.VarTemperature] = g.series(g.temp)
		msg.Series[domain.VarNetRadiation] = g.series(g.netRad)
		msg.Series[domain.VarPressure] = g.series(g.pressure)
	}

	return msg
}

// series draws one value per station, replacing a configured fraction with
// the missing-observation sentinel.
func (g *generator) series(dist distuv.Normal) etp.Series {
	s := make(etp.Series, g.stations)
	for id := 1; id <= g.stations; id++ {
		if g.uniform.Float64() < g.missing {
			s[etp.StationID(id)] = etp.NoValue
			continue
		}
		s[etp.StationID(id)] = dist.Rand()
	}
	return s
}

func stockDefaults() domain.Defaults {
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

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
