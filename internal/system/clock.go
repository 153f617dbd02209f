package system

import (
	"time"

	coresys "github.com/townforge/townsim/internal/core/system"
	"github.com/townforge/townsim/internal/world"
)

// ClockSystem advances the day-night clock before behavior reads the
// hour. Phase 0 (Events), registered after event dispatch.
type ClockSystem struct {
	state *world.State
}

func NewClockSystem(state *world.State) *ClockSystem {
	return &ClockSystem{state: state}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *ClockSystem) Update(dt time.Duration) {
	if s.state.Clock != nil {
		s.state.Clock.Advance(dt.Seconds())
	}
}
