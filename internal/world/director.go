package world

import (
	"go.uber.org/zap"

	"github.com/townforge/townsim/internal/component"
	"github.com/townforge/townsim/internal/core/ecs"
	"github.com/townforge/townsim/internal/mathx"
)

// Director is the external task-injection surface: UI, scripted
// triggers and tests drive NPCs through it. All calls are synchronous,
// side-effect-only, and must run on the game loop goroutine.
type Director struct {
	state *State
	log   *zap.Logger
}

func NewDirector(state *State, log *zap.Logger) *Director {
	return &Director{state: state, log: log}
}

// AddTask appends a task to the entity's queue tail. The head task is
// never preempted. Entities without a behavior component are skipped
// with a warning.
func (d *Director) AddTask(id ecs.EntityID, t component.Task) {
	b, ok := d.behavior(id, "add_task")
	if !ok {
		return
	}
	b.PushBack(t)
}

// ClearTasks drops the entity's whole queue.
func (d *Director) ClearTasks(id ecs.EntityID) {
	b, ok := d.behavior(id, "clear_tasks")
	if !ok {
		return
	}
	b.Clear()
}

// MoveEntityTo appends a move goal toward the given position.
func (d *Director) MoveEntityTo(id ecs.EntityID, pos mathx.Vec3) {
	d.AddTask(id, component.MoveToTask(pos))
}

// MakeEntityWork appends a hold-position work task for duration seconds.
func (d *Director) MakeEntityWork(id ecs.EntityID, duration float64) {
	d.AddTask(id, component.WorkTask(duration))
}

// MakeEntityWait appends a wait task for duration seconds.
func (d *Director) MakeEntityWait(id ecs.EntityID, duration float64) {
	d.AddTask(id, component.WaitTask(duration))
}

// ToggleGravity flips the world's gravity flag, returning the new state.
func (d *Director) ToggleGravity() bool {
	on := d.state.ToggleGravity()
	d.log.Info("gravity toggled", zap.Bool("enabled", on))
	return on
}

// Pose reads an entity's final pose for this tick.
func (d *Director) Pose(id ecs.EntityID) (Pose, bool) {
	return d.state.Pose(id)
}

func (d *Director) behavior(id ecs.EntityID, op string) (*component.Behavior, bool) {
	if !d.state.ECS.Alive(id) {
		d.log.Warn("director call on dead entity",
			zap.String("op", op), zap.Uint64("entity", uint64(id)))
		return nil, false
	}
	b, ok := d.state.Behaviors.Get(id)
	if !ok {
		d.log.Warn("director call on entity without behavior",
			zap.String("op", op), zap.Uint64("entity", uint64(id)))
		return nil, false
	}
	return b, true
}
