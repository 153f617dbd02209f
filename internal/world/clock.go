package world

import "math"

// DefaultHour is assumed whenever no clock is attached. Mid-morning, so
// routine refill picks a sensible daytime block.
const DefaultHour = 6.0

// Clock maps accumulated simulation time to an hour of day in [0,24).
// One full day lasts DayLength seconds of simulated time.
type Clock struct {
	DayLength float64 // seconds per 24h day
	elapsed   float64
}

func NewClock(dayLength, startHour float64) *Clock {
	if dayLength <= 0 {
		dayLength = 600
	}
	c := &Clock{DayLength: dayLength}
	c.elapsed = startHour / 24 * dayLength
	return c
}

// Advance moves the clock forward by dt seconds.
func (c *Clock) Advance(dt float64) {
	c.elapsed += dt
}

// CurrentHour returns the hour of day in [0,24).
func (c *Clock) CurrentHour() float64 {
	frac := math.Mod(c.elapsed/c.DayLength, 1)
	if frac < 0 {
		frac += 1
	}
	return frac * 24
}

// SunAngle converts an hour of day to the sun's elevation angle in
// radians: 0 at 06:00 (sunrise), π/2 at noon, π at 18:00 (sunset).
// Pure and stateless; external renderers drive celestial bodies off it.
func SunAngle(hour float64) float64 {
	return (hour - 6) / 24 * 2 * math.Pi
}
