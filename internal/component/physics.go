package component

import "github.com/townforge/townsim/internal/core/ecs"

// Physics holds an entity's kinematic state. The colliding set is
// rebuilt from scratch every tick and never persisted.
type Physics struct {
	Mass            float64
	Friction        float64
	CollisionRadius float64

	// Static entities register as obstacles but are exempt from
	// gravity and are never pushed by collision resolution.
	Static bool

	// NoGravity opts a single entity out of gravity integration even
	// while the global toggle is on.
	NoGravity bool

	Grounded  bool
	Colliding bool

	CollidingWith map[ecs.EntityID]struct{}
}

// ResetCollisions clears the per-tick collision state.
func (p *Physics) ResetCollisions() {
	p.Colliding = false
	if len(p.CollidingWith) > 0 {
		clear(p.CollidingWith)
	}
}

// MarkColliding records contact with other.
func (p *Physics) MarkColliding(other ecs.EntityID) {
	p.Colliding = true
	if p.CollidingWith == nil {
		p.CollidingWith = make(map[ecs.EntityID]struct{}, 4)
	}
	p.CollidingWith[other] = struct{}{}
}
