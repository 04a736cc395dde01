package etp

import "fmt"

// Unit conversions for observed FAO inputs. Defaults are declared in
// post-conversion units and bypass these factors.
const (
	// wattToMegajoule converts net radiation from W/m² to MJ/m² per
	// timestep (3.6/1000).
	wattToMegajoule = 3.6 / 1000.0

	// deciKPaToKPa converts pressure from the collectors' hPa-as-deci-kPa
	// encoding to kPa.
	deciKPaToKPa = 1.0 / 10.0
)

// FAODaily computes daily reference evapotranspiration with the FAO
// Penman-Monteith combination equation (FAO-56 eq. 6).
//
// MaxTemp is the driving series: its key set determines which stations are
// processed. Every other series is optional; absent series, missing stations,
// and NoValue observations all fall back to the corresponding default.
type FAODaily struct {
	MaxTemp          Series // °C, driving
	MinTemp          Series // °C
	NetRadiation     Series // W/m², converted to MJ/m²/day
	Wind             Series // m/s at 2 m
	RelativeHumidity Series // %
	Pressure         Series // deci-kPa, converted to kPa

	DefaultMaxTemp          float64 // °C
	DefaultMinTemp          float64 // °C
	DefaultNetRadiation     float64 // MJ/m²/day, post-conversion
	DefaultWind             float64 // m/s
	DefaultRelativeHumidity float64 // %
	DefaultPressure         float64 // kPa, post-conversion
}

// Compute returns ET in mm/day for every station in MaxTemp.
func (m FAODaily) Compute() (Series, error) {
	if len(m.MaxTemp) == 0 {
		return nil, fmt.Errorf("fao daily: %w", ErrNoDrivingSeries)
	}

	out := make(Series, len(m.MaxTemp))
	for id := range m.MaxTemp {
		maxTemp := resolve(m.MaxTemp, id, m.DefaultMaxTemp)
		minTemp := resolve(m.MinTemp, id, m.DefaultMinTemp)
		netRadiation := resolveScaled(m.NetRadiation, id, m.DefaultNetRadiation, wattToMegajoule)
		wind := resolve(m.Wind, id, m.DefaultWind)
		rh := resolve(m.RelativeHumidity, id, m.DefaultRelativeHumidity)
		pressure := resolveScaled(m.Pressure, id, m.DefaultPressure, deciKPaToKPa)

		out[id] = faoDailyETP(netRadiation, wind, maxTemp, minTemp, rh, pressure)
	}
	return out, nil
}

// faoDailyETP evaluates the daily combination equation on normalized scalars.
// Delta is taken at the mean temperature while the saturation vapor pressure
// term averages e°(Tmax) and e°(Tmin), per FAO-56.
func faoDailyETP(netRadiation, wind, maxTemp, minTemp, rh, pressure float64) float64 {
	meanTemp := (maxTemp + minTemp) / 2.0
	delta := slopeSaturationVaporPressureCurve(meanTemp)
	gamma := psychrometricConstant(pressure)

	es := (saturationVaporPressure(maxTemp) + saturationVaporPressure(minTemp)) / 2.0
	ea := rh / 100.0 * es

	radiationTerm := 0.408 * delta * netRadiation
	advectionTerm := gamma * 900.0 / (meanTemp + 273) * wind * (es - ea)
	den := delta + gamma*(1+0.34*wind)
	return (radiationTerm + advectionTerm) / den
}

// FAOHourly computes hourly reference evapotranspiration with the FAO
// Penman-Monteith equation (FAO-56 eq. 53).
//
// NetRadiation is the driving series. The soil heat flux always uses the
// daytime coefficient G = 0.1·Rn regardless of the actual hour; the 0.5
// nighttime coefficient is deliberately never selected. Downstream basins are
// calibrated against this behavior, so it is kept rather than wired to the
// day/night classifier.
type FAOHourly struct {
	NetRadiation     Series // W/m², driving, converted to MJ/m²/hour
	Temp             Series // °C
	Wind             Series // m/s at 2 m
	RelativeHumidity Series // %
	Pressure         Series // deci-kPa, converted to kPa

	DefaultNetRadiation     float64 // MJ/m²/hour, post-conversion
	DefaultTemp             float64 // °C
	DefaultWind             float64 // m/s
	DefaultRelativeHumidity float64 // %
	DefaultPressure         float64 // kPa, post-conversion
}

// Compute returns ET in mm/hour for every station in NetRadiation.
func (m FAOHourly) Compute() (Series, error) {
	if len(m.NetRadiation) == 0 {
		return nil, fmt.Errorf("fao hourly: %w", ErrNoDrivingSeries)
	}

	out := make(Series, len(m.NetRadiation))
	for id := range m.NetRadiation {
		netRadiation := resolveScaled(m.NetRadiation, id, m.DefaultNetRadiation, wattToMegajoule)
		temp := resolve(m.Temp, id, m.DefaultTemp)
		wind := resolve(m.Wind, id, m.DefaultWind)
		rh := resolve(m.RelativeHumidity, id, m.DefaultRelativeHumidity)
		pressure := resolveScaled(m.Pressure, id, m.DefaultPressure, deciKPaToKPa)

		out[id] = faoHourlyETP(netRadiation, wind, temp, rh, pressure)
	}
	return out, nil
}

// faoHourlyETP evaluates the hourly combination equation on normalized
// scalars with the fixed daytime soil heat flux coefficient.
func faoHourlyETP(netRadiation, wind, temp, rh, pressure float64) float64 {
	delta := slopeSaturationVaporPressureCurve(temp)
	gamma := psychrometricConstant(pressure)

	es := saturationVaporPressure(temp)
	ea := es * rh / 100

	soilHeatFlux := 0.1 * netRadiation

	radiationTerm := 0.408 * delta * (netRadiation - soilHeatFlux)
	advectionTerm := 37 * gamma * wind * (es - ea) / (temp + 273)
	den := delta + gamma*(1+0.34*wind)
	return (radiationTerm + advectionTerm) / den
}
