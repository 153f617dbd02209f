package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClockWrapsAtMidnight(t *testing.T) {
	c := NewClock(240, 23) // 240s day, start 23:00
	require.InDelta(t, 23, c.CurrentHour(), 1e-9)

	c.Advance(20) // 2 hours at 10s/hour
	require.InDelta(t, 1, c.CurrentHour(), 1e-9)

	c.Advance(240) // a full day later, same hour
	require.InDelta(t, 1, c.CurrentHour(), 1e-9)
}

func TestClockDefaults(t *testing.T) {
	c := NewClock(0, 0)
	require.Equal(t, 600.0, c.DayLength)
	require.InDelta(t, 0, c.CurrentHour(), 1e-9)
}

func TestSunAngleLandmarks(t *testing.T) {
	require.InDelta(t, 0, SunAngle(6), 1e-9)
	require.InDelta(t, math.Pi/2, SunAngle(12), 1e-9)
	require.InDelta(t, math.Pi, SunAngle(18), 1e-9)
}

func TestStateHourFallsBackWithoutClock(t *testing.T) {
	s := NewState(DefaultParams(), nil)
	require.Equal(t, DefaultHour, s.CurrentHour())

	s.Clock = NewClock(600, 14)
	require.InDelta(t, 14, s.CurrentHour(), 1e-9)
}
