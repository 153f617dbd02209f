package component

import "math"

// Appearance carries per-type visual parameters for external renderers.
// Purely presentational: the simulation only advances the walk-cycle
// phase from observed ground-plane movement.
type Appearance struct {
	Model   string
	Scale   float64
	Palette int32

	WalkPhase    float64
	lastX, lastZ float64
	hasLast      bool
}

// Advance accumulates walk-cycle phase from the ground distance covered
// since the previous tick. One phase unit ≈ one stride.
func (a *Appearance) Advance(x, z float64) {
	if a.hasLast {
		a.WalkPhase += math.Hypot(x-a.lastX, z-a.lastZ)
	}
	a.lastX, a.lastZ = x, z
	a.hasLast = true
}
