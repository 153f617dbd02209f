package system

import (
	"time"

	"github.com/townforge/townsim/internal/component"
	"github.com/townforge/townsim/internal/core/ecs"
	coresys "github.com/townforge/townsim/internal/core/system"
	"github.com/townforge/townsim/internal/world"
)

// AppearanceSystem advances purely presentational state — the walk
// cycle phase external renderers read alongside the pose. It runs after
// physics so it observes the tick's settled positions. Phase 3.
type AppearanceSystem struct {
	state *world.State
}

func NewAppearanceSystem(state *world.State) *AppearanceSystem {
	return &AppearanceSystem{state: state}
}

func (s *AppearanceSystem) Phase() coresys.Phase { return coresys.PhaseAppearance }

func (s *AppearanceSystem) Update(_ time.Duration) {
	ecs.Each2(s.state.Appearances, s.state.Positions,
		func(_ ecs.EntityID, a *component.Appearance, pos *component.Position) {
			a.Advance(pos.X, pos.Z)
		})
}
