package etp

import "errors"

// Engine computes reference evapotranspiration for one timestep. Each
// implementation is a value type whose Compute method is pure: identical
// inputs yield bit-identical outputs, and no state survives between calls.
// Per-station computations are independent, so callers may invoke Compute
// concurrently on separate engine values.
type Engine interface {
	// Compute returns the ET value in mm per timestep for every station in
	// the engine's driving series. Either all stations get an output, or an
	// error is returned before any output is produced.
	Compute() (Series, error)
}

// ErrNoDrivingSeries is returned when the series whose key set determines
// which stations are processed is nil or empty. Optional series may be
// absent, the driving one may not.
var ErrNoDrivingSeries = errors.New("driving series is nil or empty")
