package component

import "github.com/townforge/townsim/internal/mathx"

// Position holds an entity's world-space pose. Mutated by the physics
// system (gravity, collision resolution) and by behavior-driven
// movement; the renderer only ever reads it.
type Position struct {
	X, Y, Z   float64
	Direction float64 // facing, radians around Y
	VelocityY float64
}

func (p *Position) Vec() mathx.Vec3 {
	return mathx.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

func (p *Position) SetVec(v mathx.Vec3) {
	p.X, p.Y, p.Z = v.X, v.Y, v.Z
}

// Integrate applies accumulated vertical velocity to the position.
// The physics system owns this sub-step; horizontal movement is written
// directly by the behavior system.
func (p *Position) Integrate(dt float64) {
	p.Y += p.VelocityY * dt
}
