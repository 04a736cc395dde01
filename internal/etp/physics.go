package etp

import "math"

// Shared thermodynamic sub-expressions used by every model variant.
// All temperatures are °C, pressures kPa, energies MJ.
//
// The Magnus-form constants (0.6108, 17.27, 237.3) follow FAO-56 chapter 3.
// A temperature of exactly -237.3 °C makes the denominators vanish; the
// resulting Inf/NaN propagates into the ET value uncorrected, as that input
// is physically unreachable.

// saturationVaporPressure returns e°(T) in kPa.
func saturationVaporPressure(temp float64) float64 {
	return 0.6108 * math.Exp(17.27*temp/(temp+237.3))
}

// slopeSaturationVaporPressureCurve returns Delta, the slope of the
// saturation vapor pressure curve at temp, in kPa/°C.
func slopeSaturationVaporPressureCurve(temp float64) float64 {
	den := (temp + 237.3) * (temp + 237.3)
	return 4098 * saturationVaporPressure(temp) / den
}

// latentHeatOfVaporization returns lambda in MJ/kg.
func latentHeatOfVaporization(temp float64) float64 {
	return 2.501 - 0.002361*temp
}

// psychrometricConstant returns gamma in kPa/°C from atmospheric pressure in
// kPa, using the fixed FAO-56 coefficient. The Priestley-Taylor variants
// derive gamma from lambda instead; see PriestleyTaylor.etp.
func psychrometricConstant(pressure float64) float64 {
	return 0.665e-3 * pressure
}
