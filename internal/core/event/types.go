package event

import "github.com/townforge/townsim/internal/core/ecs"

// Collision is emitted once per overlapping pair per tick, with A < B.
type Collision struct {
	A, B ecs.EntityID
}

// TaskCompleted is emitted when a behavior task's completion predicate
// holds and the task is popped from an entity's queue.
type TaskCompleted struct {
	Entity ecs.EntityID
	Kind   string
}

// TaskDropped is emitted when a malformed task is discarded. This is
// the observable channel for scripted callers that enqueued bad data.
type TaskDropped struct {
	Entity ecs.EntityID
	Kind   string
	Reason string
}

// EntityDestroyed is emitted after the destroy queue is flushed.
type EntityDestroyed struct {
	Entity ecs.EntityID
}
