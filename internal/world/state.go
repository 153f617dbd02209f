package world

import (
	"github.com/townforge/townsim/internal/component"
	"github.com/townforge/townsim/internal/core/ecs"
	"github.com/townforge/townsim/internal/core/event"
	"github.com/townforge/townsim/internal/mathx"
)

// State is the authoritative simulation state: the ECS container, the
// typed component stores, the broad-phase grid, and the day-night
// clock. Accessed only from the game loop goroutine — no locks.
type State struct {
	ECS *ecs.World
	Bus *event.Bus

	Positions   *ecs.Store[component.Position]
	Physics     *ecs.Store[component.Physics]
	Behaviors   *ecs.Store[component.Behavior]
	Appearances *ecs.Store[component.Appearance]

	Grid  *Grid
	Clock *Clock // nil means no time source is attached

	// GravityOn gates gravity integration globally without touching
	// per-entity velocities.
	GravityOn bool

	GroundLevel float64
}

// Params configure the world extents and physics constants.
type Params struct {
	WorldSize   float64
	CellSize    float64
	GroundLevel float64
	GravityOn   bool
}

func DefaultParams() Params {
	return Params{
		WorldSize:   100,
		CellSize:    10,
		GroundLevel: 0,
		GravityOn:   true,
	}
}

func NewState(p Params, bus *event.Bus) *State {
	s := &State{
		ECS:         ecs.NewWorld(),
		Bus:         bus,
		Positions:   ecs.NewStore[component.Position](),
		Physics:     ecs.NewStore[component.Physics](),
		Behaviors:   ecs.NewStore[component.Behavior](),
		Appearances: ecs.NewStore[component.Appearance](),
		Grid:        NewGrid(p.WorldSize, p.CellSize),
		GravityOn:   p.GravityOn,
		GroundLevel: p.GroundLevel,
	}
	reg := s.ECS.Registry()
	reg.Register(s.Positions)
	reg.Register(s.Physics)
	reg.Register(s.Behaviors)
	reg.Register(s.Appearances)
	return s
}

// CurrentHour is the time-of-day oracle. Falls back to DefaultHour when
// no clock is attached, so a missing collaborator never stalls a tick.
func (s *State) CurrentHour() float64 {
	if s.Clock == nil {
		return DefaultHour
	}
	return s.Clock.CurrentHour()
}

// ToggleGravity flips the global gravity flag and returns the new
// state. Per-entity velocities are left untouched.
func (s *State) ToggleGravity() bool {
	s.GravityOn = !s.GravityOn
	return s.GravityOn
}

// Pose is the per-tick output read by external renderers.
type Pose struct {
	X, Y, Z   float64
	Direction float64
}

// Pose returns the entity's final pose for this tick.
func (s *State) Pose(id ecs.EntityID) (Pose, bool) {
	p, ok := s.Positions.Get(id)
	if !ok {
		return Pose{}, false
	}
	return Pose{X: p.X, Y: p.Y, Z: p.Z, Direction: p.Direction}, true
}

// NPCSpec bundles the component values for one spawned townsperson.
type NPCSpec struct {
	Pos        mathx.Vec3
	Direction  float64
	Radius     float64
	Mass       float64
	MoveSpeed  float64
	Profession string
	Model      string
	Scale      float64
	Palette    int32
}

// SpawnNPC creates a live NPC entity with position, physics, behavior
// and appearance components attached.
func (s *State) SpawnNPC(spec NPCSpec) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Positions.Set(id, &component.Position{
		X: spec.Pos.X, Y: spec.Pos.Y, Z: spec.Pos.Z,
		Direction: spec.Direction,
	})
	s.Physics.Set(id, &component.Physics{
		Mass:            spec.Mass,
		Friction:        0.9,
		CollisionRadius: spec.Radius,
	})
	s.Behaviors.Set(id, &component.Behavior{
		Profession: spec.Profession,
		MoveSpeed:  spec.MoveSpeed,
		ArriveEps:  0.25,
	})
	s.Appearances.Set(id, &component.Appearance{
		Model:   spec.Model,
		Scale:   spec.Scale,
		Palette: spec.Palette,
	})
	return id
}

// SpawnObstacle creates a static collider (well, market stall, building
// footprint). It blocks NPCs but never moves.
func (s *State) SpawnObstacle(pos mathx.Vec3, radius float64) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Positions.Set(id, &component.Position{X: pos.X, Y: pos.Y, Z: pos.Z})
	s.Physics.Set(id, &component.Physics{
		Static:          true,
		NoGravity:       true,
		CollisionRadius: radius,
		Grounded:        true,
	})
	return id
}

// Destroy queues an entity for end-of-tick removal. Its components and
// grid bucket entry disappear when the cleanup system flushes.
func (s *State) Destroy(id ecs.EntityID) {
	s.ECS.MarkForDestruction(id)
}
