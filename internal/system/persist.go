package system

import (
	"time"

	"github.com/google/uuid"

	"github.com/townforge/townsim/internal/component"
	"github.com/townforge/townsim/internal/core/ecs"
	coresys "github.com/townforge/townsim/internal/core/system"
	"github.com/townforge/townsim/internal/persist"
	"github.com/townforge/townsim/internal/world"
)

// PersistSystem samples entity poses every interval ticks and hands
// them to the snapshot repo, fire-and-forget. With a nil repo the
// system is inert. Phase 4 (Persist).
type PersistSystem struct {
	state    *world.State
	repo     *persist.SnapshotRepo
	runID    uuid.UUID
	interval int
	tick     int64
}

func NewPersistSystem(state *world.State, repo *persist.SnapshotRepo, runID uuid.UUID, interval int) *PersistSystem {
	if interval < 1 {
		interval = 50
	}
	return &PersistSystem{
		state:    state,
		repo:     repo,
		runID:    runID,
		interval: interval,
	}
}

func (s *PersistSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistSystem) Update(_ time.Duration) {
	if s.repo == nil {
		return
	}
	s.tick++
	if s.tick%int64(s.interval) != 0 {
		return
	}

	batch := persist.SnapshotBatch{RunID: s.runID, Tick: s.tick}
	s.state.Positions.EachOrdered(func(id ecs.EntityID, p *component.Position) {
		batch.Rows = append(batch.Rows, persist.PoseRow{
			EntityID:  uint64(id),
			X:         p.X,
			Y:         p.Y,
			Z:         p.Z,
			Direction: p.Direction,
		})
	})
	s.repo.Enqueue(batch)
}
