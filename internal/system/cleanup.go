package system

import (
	"time"

	"github.com/townforge/townsim/internal/core/event"
	coresys "github.com/townforge/townsim/internal/core/system"
	"github.com/townforge/townsim/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick
// end, so no system ever loses an entity mid-pass. Phase 5 (Cleanup).
type CleanupSystem struct {
	state *world.State
}

func NewCleanupSystem(state *world.State) *CleanupSystem {
	return &CleanupSystem{state: state}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	for _, id := range s.state.ECS.FlushDestroyQueue() {
		if s.state.Bus != nil {
			event.Emit(s.state.Bus, event.EntityDestroyed{Entity: id})
		}
	}
}
