package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/townforge/townsim/internal/component"
	"github.com/townforge/townsim/internal/core/event"
	"github.com/townforge/townsim/internal/mathx"
	"github.com/townforge/townsim/internal/world"
)

const tick = 100 * time.Millisecond

func newTestState() *world.State {
	return world.NewState(world.DefaultParams(), event.NewBus())
}

func TestFallingEntitySettlesOnGround(t *testing.T) {
	state := newTestState()
	phys := NewPhysicsSystem(state)

	id := state.SpawnNPC(world.NPCSpec{
		Pos:    mathx.Vec3{X: 0, Y: 20, Z: 0},
		Radius: 1,
	})

	for i := 0; i < 300; i++ {
		phys.Update(tick)
	}

	pos, _ := state.Positions.Get(id)
	ph, _ := state.Physics.Get(id)
	require.InDelta(t, 1.0, pos.Y, 1e-9, "rests at groundLevel + collisionRadius")
	require.Equal(t, 0.0, pos.VelocityY)
	require.True(t, ph.Grounded)

	// Idempotent once grounded.
	phys.Update(tick)
	pos, _ = state.Positions.Get(id)
	require.InDelta(t, 1.0, pos.Y, 1e-9)
}

func TestGravityToggleFreezesWithoutResettingVelocity(t *testing.T) {
	state := newTestState()
	phys := NewPhysicsSystem(state)

	id := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{Y: 20}, Radius: 1})
	phys.Update(tick)

	pos, _ := state.Positions.Get(id)
	yAfterOne := pos.Y
	vAfterOne := pos.VelocityY
	require.Less(t, vAfterOne, 0.0)

	off := state.ToggleGravity()
	require.False(t, off)
	for i := 0; i < 10; i++ {
		phys.Update(tick)
	}
	pos, _ = state.Positions.Get(id)
	require.Equal(t, yAfterOne, pos.Y, "no integration while gravity is off")
	require.Equal(t, vAfterOne, pos.VelocityY, "velocity is preserved, not reset")

	require.True(t, state.ToggleGravity())
	phys.Update(tick)
	pos, _ = state.Positions.Get(id)
	require.Less(t, pos.Y, yAfterOne, "falling resumes with the retained velocity")
}

func TestOverlappingPairPushesApartSymmetrically(t *testing.T) {
	state := newTestState()
	phys := NewPhysicsSystem(state)

	a := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 50, Z: 50}, Radius: 0.5})
	b := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 50.5, Z: 50}, Radius: 0.5})

	before := 0.5
	phys.Update(tick)

	aPh, _ := state.Physics.Get(a)
	bPh, _ := state.Physics.Get(b)
	require.True(t, aPh.Colliding)
	require.True(t, bPh.Colliding)
	require.Contains(t, aPh.CollidingWith, b)
	require.Contains(t, bPh.CollidingWith, a)

	aPos, _ := state.Positions.Get(a)
	bPos, _ := state.Positions.Get(b)
	after := mathx.DistXZ(aPos.Vec(), bPos.Vec())
	require.Greater(t, after, before, "separation increases after resolution")
}

func TestCollisionStateIsRebuiltEachTick(t *testing.T) {
	state := newTestState()
	phys := NewPhysicsSystem(state)

	a := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 50, Z: 50}, Radius: 0.5})
	b := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 50.2, Z: 50}, Radius: 0.5})

	phys.Update(tick)
	aPh, _ := state.Physics.Get(a)
	require.True(t, aPh.Colliding)

	// Move them far apart; the stale contact must not survive.
	bPos, _ := state.Positions.Get(b)
	bPos.X, bPos.Z = 90, 90
	phys.Update(tick)

	aPh, _ = state.Physics.Get(a)
	bPh, _ := state.Physics.Get(b)
	require.False(t, aPh.Colliding)
	require.False(t, bPh.Colliding)
	require.Empty(t, aPh.CollidingWith)
}

func TestStaticObstacleNeverMoves(t *testing.T) {
	state := newTestState()
	phys := NewPhysicsSystem(state)

	wall := state.SpawnObstacle(mathx.Vec3{X: 50, Z: 50}, 2)
	npc := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 51, Z: 50, Y: 0.5}, Radius: 0.5})

	phys.Update(tick)

	wallPos, _ := state.Positions.Get(wall)
	require.Equal(t, 50.0, wallPos.X)
	require.Equal(t, 50.0, wallPos.Z)

	npcPos, _ := state.Positions.Get(npc)
	require.Greater(t, mathx.DistXZ(wallPos.Vec(), npcPos.Vec()), 1.0,
		"the non-static side absorbs the full push")

	wallPh, _ := state.Physics.Get(wall)
	require.True(t, wallPh.Colliding, "static entities still register contacts")
}

func TestCoincidentEntitiesResolveAlongFixedAxis(t *testing.T) {
	state := newTestState()
	phys := NewPhysicsSystem(state)

	a := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 50, Z: 50}, Radius: 0.5})
	b := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 50, Z: 50}, Radius: 0.5})

	phys.Update(tick)

	aPos, _ := state.Positions.Get(a)
	bPos, _ := state.Positions.Get(b)
	require.NotEqual(t, aPos.X, bPos.X, "zero separation still resolves")
	require.Equal(t, aPos.Z, bPos.Z, "tie-break is the +X axis")
	require.Greater(t, mathx.DistXZ(aPos.Vec(), bPos.Vec()), 0.0)
}

func TestEntitiesWithoutPhysicsAreSkipped(t *testing.T) {
	state := newTestState()
	phys := NewPhysicsSystem(state)

	// Position-only entity sharing a cell with a real collider.
	ghost := state.ECS.CreateEntity()
	state.Positions.Set(ghost, &component.Position{X: 50, Z: 50})
	state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 50, Z: 50}, Radius: 0.5})

	require.NotPanics(t, func() { phys.Update(tick) })

	got, _ := state.Positions.Get(ghost)
	require.Equal(t, 50.0, got.X, "component-less entities are untouched")
}

func TestCollisionEventsEmittedOncePerPair(t *testing.T) {
	state := newTestState()
	phys := NewPhysicsSystem(state)

	var seen []event.Collision
	event.Subscribe(state.Bus, func(e event.Collision) { seen = append(seen, e) })

	a := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 50, Z: 50}, Radius: 0.5})
	b := state.SpawnNPC(world.NPCSpec{Pos: mathx.Vec3{X: 50.5, Z: 50}, Radius: 0.5})

	phys.Update(tick)
	state.Bus.SwapBuffers()
	state.Bus.DispatchAll()

	require.Len(t, seen, 1)
	require.Equal(t, a, seen[0].A)
	require.Equal(t, b, seen[0].B)
}
