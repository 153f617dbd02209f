package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ N int }
type pong struct{ N int }

func TestEventsDeliverOneTickLater(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(e ping) { got = append(got, e.N) })

	Emit(b, ping{N: 1})
	b.DispatchAll()
	require.Empty(t, got, "events emitted this tick are not visible yet")

	b.SwapBuffers()
	b.DispatchAll()
	require.Equal(t, []int{1}, got)

	// Delivered events are not replayed.
	b.SwapBuffers()
	b.DispatchAll()
	require.Equal(t, []int{1}, got)
}

func TestHandlersAreTypeIsolated(t *testing.T) {
	b := NewBus()
	pings, pongs := 0, 0
	Subscribe(b, func(ping) { pings++ })
	Subscribe(b, func(pong) { pongs++ })

	Emit(b, ping{})
	Emit(b, ping{})
	Emit(b, pong{})
	b.SwapBuffers()
	b.DispatchAll()

	require.Equal(t, 2, pings)
	require.Equal(t, 1, pongs)
}
