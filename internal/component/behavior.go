package component

import (
	"fmt"

	"github.com/townforge/townsim/internal/mathx"
)

// TaskKind enumerates the behavior states an NPC can occupy. An empty
// queue is the implicit idle state.
type TaskKind int

const (
	TaskMoveTo TaskKind = iota
	TaskFollowPath
	TaskWork
	TaskWait
)

func (k TaskKind) String() string {
	switch k {
	case TaskMoveTo:
		return "move_to"
	case TaskFollowPath:
		return "follow_path"
	case TaskWork:
		return "work"
	case TaskWait:
		return "wait"
	default:
		return fmt.Sprintf("task(%d)", int(k))
	}
}

// Task is one queued behavior goal. Which fields are meaningful depends
// on Kind: MoveTo uses Target, FollowPath uses Waypoints, Work and Wait
// use Remaining (seconds).
type Task struct {
	Kind      TaskKind
	Target    mathx.Vec3
	HasTarget bool
	Waypoints []mathx.Vec3
	Remaining float64
}

// Validate reports why a task is malformed, or "" when it is well
// formed. Malformed tasks are dropped by the behavior system without
// aborting the tick.
func (t *Task) Validate() string {
	switch t.Kind {
	case TaskMoveTo:
		if !t.HasTarget {
			return "move_to without target position"
		}
	case TaskFollowPath:
		if len(t.Waypoints) == 0 {
			return "follow_path without waypoints"
		}
	case TaskWork, TaskWait:
		if t.Remaining <= 0 {
			return "timer task without positive duration"
		}
	default:
		return "unknown task kind"
	}
	return ""
}

func MoveToTask(target mathx.Vec3) Task {
	return Task{Kind: TaskMoveTo, Target: target, HasTarget: true}
}

func FollowPathTask(waypoints []mathx.Vec3) Task {
	return Task{Kind: TaskFollowPath, Waypoints: waypoints}
}

func WorkTask(duration float64) Task {
	return Task{Kind: TaskWork, Remaining: duration}
}

func WaitTask(duration float64) Task {
	return Task{Kind: TaskWait, Remaining: duration}
}

// Behavior holds an NPC's ordered task queue plus its movement
// parameters. Queue order is the only scheduling authority: the head
// task is the active state and new tasks always append at the tail.
type Behavior struct {
	Queue      []Task
	Profession string
	MoveSpeed  float64 // units per second
	ArriveEps  float64 // arrival epsilon for move goals
}

// Head returns the active task, or nil when idle.
func (b *Behavior) Head() *Task {
	if len(b.Queue) == 0 {
		return nil
	}
	return &b.Queue[0]
}

// PushBack appends a task at the tail, never preempting the head.
func (b *Behavior) PushBack(t Task) {
	b.Queue = append(b.Queue, t)
}

// PopHead removes the active task.
func (b *Behavior) PopHead() {
	if len(b.Queue) > 0 {
		b.Queue = b.Queue[1:]
	}
}

// Clear drops every queued task. This is the only cancellation
// primitive the behavior model has.
func (b *Behavior) Clear() {
	b.Queue = b.Queue[:0]
}

// Idle reports whether the queue is empty.
func (b *Behavior) Idle() bool {
	return len(b.Queue) == 0
}

// OnlyWaiting reports whether every queued task is a pure timer wait.
// The wander policy may liven such entities up.
func (b *Behavior) OnlyWaiting() bool {
	for i := range b.Queue {
		if b.Queue[i].Kind != TaskWait {
			return false
		}
	}
	return true
}
