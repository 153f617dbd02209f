package ecs

// World is the top-level ECS container: the entity pool, the component
// registry, and a deferred destruction queue. Systems never remove
// entities mid-pass; they call MarkForDestruction and the cleanup
// system flushes the queue between ticks.
type World struct {
	pool         *Pool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *Pool         { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities, clears their
// components from every registered store, and returns the IDs that
// were actually destroyed (stale queue entries are skipped).
func (w *World) FlushDestroyQueue() []EntityID {
	var destroyed []EntityID
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		destroyed = append(destroyed, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return destroyed
}
