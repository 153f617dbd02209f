package system

import "time"

// Phase defines execution ordering within a single tick. Behavior runs
// before physics so task-driven movement is integrated and resolved in
// the same tick; appearance and persistence read the settled poses.
type Phase int

const (
	PhaseEvents     Phase = iota // 0: deliver last tick's events
	PhaseBehavior                // 1: task queues, routine refill
	PhasePhysics                 // 2: gravity, integration, collisions
	PhaseAppearance              // 3: presentational state
	PhasePersist                 // 4: best-effort snapshots
	PhaseCleanup                 // 5: destroy queued entities
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
