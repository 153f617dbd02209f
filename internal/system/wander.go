package system

import (
	"math/rand"

	"github.com/townforge/townsim/internal/component"
	"github.com/townforge/townsim/internal/core/ecs"
	"github.com/townforge/townsim/internal/mathx"
)

// WanderPolicy decides whether an idle-or-only-waiting entity should be
// handed a random stroll. It is injected so tests can swap in a
// deterministic or inert policy; liveliness is a heuristic, not a
// correctness requirement.
type WanderPolicy interface {
	Propose(id ecs.EntityID, pos mathx.Vec3) (component.Task, bool)
}

// RandomWander appends a short random walk with a small per-tick
// probability, seeded at construction.
type RandomWander struct {
	rng    *rand.Rand
	chance float64 // per-tick probability
	radius float64 // max stroll distance from the current position
}

func NewRandomWander(seed int64, chance, radius float64) *RandomWander {
	if chance <= 0 {
		chance = 0.002
	}
	if radius <= 0 {
		radius = 6
	}
	return &RandomWander{
		rng:    rand.New(rand.NewSource(seed)),
		chance: chance,
		radius: radius,
	}
}

func (w *RandomWander) Propose(_ ecs.EntityID, pos mathx.Vec3) (component.Task, bool) {
	if w.rng.Float64() >= w.chance {
		return component.Task{}, false
	}
	target := mathx.Vec3{
		X: pos.X + (w.rng.Float64()*2-1)*w.radius,
		Y: pos.Y,
		Z: pos.Z + (w.rng.Float64()*2-1)*w.radius,
	}
	return component.MoveToTask(target), true
}

// NoWander never proposes anything. Used by tests and headless runs
// that need strict determinism.
type NoWander struct{}

func (NoWander) Propose(ecs.EntityID, mathx.Vec3) (component.Task, bool) {
	return component.Task{}, false
}
