package etp

// StationID identifies a monitoring station or basin outlet. IDs are opaque
// to the engine; the upstream forcing producer assigns them and keeps them
// stable across timesteps.
type StationID int

// Series maps stations to a single observed value for one timestep.
// A nil Series means the variable was not supplied at all, in which case
// every station falls back to the configured default.
type Series map[StationID]float64

// NoValue is the sentinel marking an intentionally missing per-station
// observation. It matches the -9999 convention used by the upstream
// time-series collectors, so values pass through unchanged.
const NoValue = -9999.0

// IsNoValue reports whether v is the missing-observation sentinel.
func IsNoValue(v float64) bool {
	return v == NoValue
}

// observed returns the stored value for id and true when the series carries
// a usable observation: the series is non-nil, the station is a key, and the
// value is not the NoValue sentinel.
func observed(s Series, id StationID) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s[id]
	if !ok || IsNoValue(v) {
		return 0, false
	}
	return v, true
}

// resolve returns the observation for id, or def when the observation is
// missing at either the whole-variable or per-station granularity.
func resolve(s Series, id StationID, def float64) float64 {
	if v, ok := observed(s, id); ok {
		return v
	}
	return def
}

// resolveScaled is resolve with a unit conversion applied to observations
// only. The FAO engines declare their defaults in post-conversion units, so
// the default bypasses the scale factor. The Priestley-Taylor engine declares
// its radiation defaults in raw W/m² and scales them the same way as
// observations; it therefore uses resolve followed by an unconditional
// conversion instead of this helper.
func resolveScaled(s Series, id StationID, def, scale float64) float64 {
	if v, ok := observed(s, id); ok {
		return v * scale
	}
	return def
}
