// Package etp computes reference evapotranspiration (ET) for a set of
// monitoring stations at a single timestep.
//
// # Models
//
// Four engine variants share one shape, selected upstream by model kind:
//
//	FAODaily         FAO Penman-Monteith, mm/day  (FAO-56 eq. 6)
//	FAOHourly        FAO Penman-Monteith, mm/hour (FAO-56 eq. 53)
//	PriestleyTaylor  radiation-based, mm/day or mm/hour via Hourly
//
// Each engine iterates the stations of its driving series, resolves every
// input variable, normalizes units, and evaluates the formula. Stations are
// independent; a Compute call either produces one value per driving station
// or fails before producing anything.
//
// # Input resolution
//
// Observations arrive as per-station Series. A variable is missing at two
// granularities: the whole Series may be nil (not supplied this timestep),
// or an individual station's value may equal the NoValue sentinel (-9999).
// Both cases silently substitute the configured default. Only an empty
// driving series is an error.
//
// # Units
//
// Collectors deliver net radiation in W/m² and pressure in deci-kPa (hPa
// numerals). The FAO engines convert observations with fixed factors
// (radiation ×3.6/1000, pressure ÷10) but take their defaults pre-converted,
// so defaults bypass the factors. Priestley-Taylor radiation defaults are
// declared in raw W/m² and are scaled exactly like observations (×0.0864
// daily, ×0.0864/24 hourly); its pressure is consumed as kPa unconverted.
// This asymmetry is load-bearing: basin calibrations depend on it.
//
// # Day and night
//
// The hourly Priestley-Taylor variant selects its soil heat flux coefficient
// by a daylight test on the timestep's hour: strictly after 6 and strictly
// before 18 is day. The hourly FAO variant instead hard-codes the daytime
// coefficient 0.1 for all hours; see FAOHourly.
//
// # Numerical edge cases
//
// A temperature of exactly -237.3 °C divides by zero inside the Magnus
// expressions. The resulting Inf/NaN is propagated, not trapped: the input
// is physically unreachable and trapping it would hide upstream corruption.
// Zero wind is valid and simply removes the FAO advective term.
package etp
