package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/townforge/townsim/internal/component"
	"github.com/townforge/townsim/internal/core/ecs"
	"github.com/townforge/townsim/internal/core/event"
	coresys "github.com/townforge/townsim/internal/core/system"
	"github.com/townforge/townsim/internal/data"
	"github.com/townforge/townsim/internal/mathx"
	"github.com/townforge/townsim/internal/scripting"
	"github.com/townforge/townsim/internal/world"
)

// idleWaitSeconds is the fallback task injected when neither Lua nor
// the routine table produce anything, so a ticked entity never ends a
// behavior pass with an empty queue.
const idleWaitSeconds = 5.0

// BehaviorSystem drives each NPC's task queue: the head task is the
// active state, a task pops exactly when its completion predicate
// holds, and an emptied queue is refilled from the daily routine for
// the current hour. Lua decides, Go executes: when the scripting
// engine's on_idle hook returns commands they take precedence over the
// routine table. Phase 1 (Behavior).
type BehaviorSystem struct {
	state     *world.State
	routines  *data.RoutineTable
	locations *data.LocationTable
	script    *scripting.Engine // optional
	wander    WanderPolicy
	log       *zap.Logger
}

func NewBehaviorSystem(
	state *world.State,
	routines *data.RoutineTable,
	locations *data.LocationTable,
	script *scripting.Engine,
	wander WanderPolicy,
	log *zap.Logger,
) *BehaviorSystem {
	if wander == nil {
		wander = NoWander{}
	}
	return &BehaviorSystem{
		state:     state,
		routines:  routines,
		locations: locations,
		script:    script,
		wander:    wander,
		log:       log,
	}
}

func (s *BehaviorSystem) Phase() coresys.Phase { return coresys.PhaseBehavior }

func (s *BehaviorSystem) Update(dt time.Duration) {
	d := dt.Seconds()
	ecs.Each2Ordered(s.state.Behaviors, s.state.Positions,
		func(id ecs.EntityID, b *component.Behavior, pos *component.Position) {
			s.step(id, b, pos, d)
			if b.Idle() || b.OnlyWaiting() {
				if task, ok := s.wander.Propose(id, pos.Vec()); ok {
					b.PushBack(task)
				}
			}
		})
}

// step advances the head task by d seconds, or refills an empty queue.
func (s *BehaviorSystem) step(id ecs.EntityID, b *component.Behavior, pos *component.Position, d float64) {
	head := b.Head()
	if head == nil {
		s.refill(id, b, pos)
		return
	}

	if reason := head.Validate(); reason != "" {
		s.log.Warn("dropping malformed task",
			zap.Uint64("entity", uint64(id)),
			zap.Stringer("kind", head.Kind),
			zap.String("reason", reason))
		if s.state.Bus != nil {
			event.Emit(s.state.Bus, event.TaskDropped{
				Entity: id, Kind: head.Kind.String(), Reason: reason,
			})
		}
		b.PopHead()
		return
	}

	done := false
	switch head.Kind {
	case component.TaskMoveTo:
		done = s.moveToward(b, pos, head.Target, d)
	case component.TaskFollowPath:
		if s.moveToward(b, pos, head.Waypoints[0], d) {
			head.Waypoints = head.Waypoints[1:]
			done = len(head.Waypoints) == 0
		}
	case component.TaskWork, component.TaskWait:
		// Work holds position, wait just burns time; both are pure
		// timers from the queue's point of view.
		head.Remaining -= d
		done = head.Remaining <= 0
	}

	if done {
		kind := head.Kind
		b.PopHead()
		if s.state.Bus != nil {
			event.Emit(s.state.Bus, event.TaskCompleted{Entity: id, Kind: kind.String()})
		}
	}
}

// moveToward steps the entity across the ground plane at its move
// speed and reports arrival within the entity's epsilon. Vertical
// motion stays with the physics system.
func (s *BehaviorSystem) moveToward(b *component.Behavior, pos *component.Position, target mathx.Vec3, d float64) bool {
	here := pos.Vec()
	dist := mathx.DistXZ(here, target)
	if dist <= b.ArriveEps {
		return true
	}

	dir := mathx.Vec3{X: target.X - here.X, Z: target.Z - here.Z}
	dir = dir.Scale(1 / dist)
	step := b.MoveSpeed * d
	if step > dist {
		step = dist
	}
	pos.X += dir.X * step
	pos.Z += dir.Z * step
	pos.Direction = mathx.HeadingXZ(dir)

	return mathx.DistXZ(pos.Vec(), target) <= b.ArriveEps
}

// refill consults the Lua on_idle hook, then the routine table for the
// current hour, and finally falls back to a plain wait so the queue is
// never left empty.
func (s *BehaviorSystem) refill(id ecs.EntityID, b *component.Behavior, pos *component.Position) {
	hour := s.state.CurrentHour()

	if s.script != nil {
		cmds := s.script.RunOnIdle(scripting.IdleContext{
			Entity:     uint64(id),
			Profession: b.Profession,
			Hour:       hour,
			X:          pos.X, Y: pos.Y, Z: pos.Z,
		})
		for _, cmd := range cmds {
			s.enqueueCommand(id, b, cmd)
		}
	}

	if b.Idle() && s.routines != nil {
		if block := s.routines.BlockFor(b.Profession, hour); block != nil {
			s.enqueueRoutine(id, b, block)
		}
	}

	if b.Idle() {
		b.PushBack(component.WaitTask(idleWaitSeconds))
	}
}

func (s *BehaviorSystem) enqueueCommand(id ecs.EntityID, b *component.Behavior, cmd scripting.Command) {
	switch cmd.Type {
	case "move_to":
		b.PushBack(component.MoveToTask(mathx.Vec3{X: cmd.X, Y: cmd.Y, Z: cmd.Z}))
	case "work":
		b.PushBack(component.WorkTask(cmd.Duration))
	case "wait":
		b.PushBack(component.WaitTask(cmd.Duration))
	case "clear":
		b.Clear()
	default:
		s.log.Warn("unknown script command",
			zap.Uint64("entity", uint64(id)), zap.String("type", cmd.Type))
	}
}

func (s *BehaviorSystem) enqueueRoutine(id ecs.EntityID, b *component.Behavior, block *data.RoutineBlock) {
	for _, step := range block.Steps {
		switch step.Action {
		case "move_to":
			var target mathx.Vec3
			ok := s.locations != nil
			if ok {
				target, ok = s.locations.Resolve(step.Location)
			}
			if !ok {
				s.log.Warn("routine references unknown location",
					zap.Uint64("entity", uint64(id)),
					zap.String("profession", b.Profession),
					zap.String("location", step.Location))
				continue
			}
			b.PushBack(component.MoveToTask(target))
		case "work":
			b.PushBack(component.WorkTask(step.Duration))
		case "wait":
			b.PushBack(component.WaitTask(step.Duration))
		default:
			s.log.Warn("routine has unknown action",
				zap.String("profession", b.Profession),
				zap.String("action", step.Action))
		}
	}
}
