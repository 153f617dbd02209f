package system

import (
	"time"

	"github.com/townforge/townsim/internal/component"
	"github.com/townforge/townsim/internal/core/ecs"
	"github.com/townforge/townsim/internal/core/event"
	coresys "github.com/townforge/townsim/internal/core/system"
	"github.com/townforge/townsim/internal/mathx"
	"github.com/townforge/townsim/internal/world"
)

// Gravity is the vertical acceleration applied to airborne entities,
// in units per second squared.
const Gravity = -9.8

// PhysicsSystem advances kinematic state and resolves interpenetration.
// Per tick: gravity integration and grounding, vertical position
// integration, grid rebuild, then broad-phase neighbor queries with an
// XZ sphere-sphere narrow phase and push-apart resolution.
// Phase 2 (Physics).
//
// Entities lacking a Position or Physics component are skipped at every
// stage; a missing component never aborts the tick.
type PhysicsSystem struct {
	state *world.State
}

func NewPhysicsSystem(state *world.State) *PhysicsSystem {
	return &PhysicsSystem{state: state}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *PhysicsSystem) Update(dt time.Duration) {
	d := dt.Seconds()
	s.integrate(d)
	s.collide()
}

// integrate applies gravity and vertical velocity. The global gravity
// toggle suspends the whole step without resetting velocities.
func (s *PhysicsSystem) integrate(d float64) {
	if !s.state.GravityOn {
		return
	}
	ecs.Each2Ordered(s.state.Positions, s.state.Physics,
		func(_ ecs.EntityID, pos *component.Position, ph *component.Physics) {
			if ph.Static || ph.NoGravity || ph.Grounded {
				return
			}
			pos.VelocityY += Gravity * d
			pos.Integrate(d)

			rest := s.state.GroundLevel + ph.CollisionRadius
			if pos.Y <= rest {
				pos.Y = rest
				pos.VelocityY = 0
				ph.Grounded = true
			} else {
				ph.Grounded = false
			}
		})
}

// collide rebuilds the grid and resolves overlapping pairs. Each pair
// is handled once (lower ID first) so push-apart is applied exactly
// once per contact while the colliding marks stay symmetric.
func (s *PhysicsSystem) collide() {
	s.state.Grid.Rebuild(s.state.Positions)

	s.state.Physics.Each(func(_ ecs.EntityID, ph *component.Physics) {
		ph.ResetCollisions()
	})

	ecs.Each2Ordered(s.state.Positions, s.state.Physics,
		func(id ecs.EntityID, pos *component.Position, ph *component.Physics) {
			for _, other := range s.state.Grid.Neighbors(id) {
				if other <= id {
					continue // pair already handled from the lower ID
				}
				otherPos, ok := s.state.Positions.Get(other)
				if !ok {
					continue
				}
				otherPh, ok := s.state.Physics.Get(other)
				if !ok {
					continue
				}
				s.resolvePair(id, pos, ph, other, otherPos, otherPh)
			}
		})
}

func (s *PhysicsSystem) resolvePair(
	a ecs.EntityID, aPos *component.Position, aPh *component.Physics,
	b ecs.EntityID, bPos *component.Position, bPh *component.Physics,
) {
	sum := aPh.CollisionRadius + bPh.CollisionRadius
	dist := mathx.DistXZ(aPos.Vec(), bPos.Vec())
	if dist >= sum {
		return
	}

	aPh.MarkColliding(b)
	bPh.MarkColliding(a)
	if s.state.Bus != nil {
		event.Emit(s.state.Bus, event.Collision{A: a, B: b})
	}

	if aPh.Static && bPh.Static {
		return
	}

	// Push apart along the XZ separation axis, proportional to
	// penetration depth. Exactly coincident centers resolve along +X
	// so the outcome stays deterministic.
	dir := mathx.Vec3{X: aPos.X - bPos.X, Z: aPos.Z - bPos.Z}
	if dir.LenXZ() < 1e-9 {
		dir = mathx.Vec3{X: 1}
	} else {
		dir = dir.Scale(1 / dir.LenXZ())
	}
	penetration := sum - dist

	switch {
	case aPh.Static:
		bPos.X -= dir.X * penetration
		bPos.Z -= dir.Z * penetration
	case bPh.Static:
		aPos.X += dir.X * penetration
		aPos.Z += dir.Z * penetration
	default:
		half := penetration / 2
		aPos.X += dir.X * half
		aPos.Z += dir.Z * half
		bPos.X -= dir.X * half
		bPos.Z -= dir.Z * half
	}
}
