package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type health struct{ HP int }
type tag struct{ Name string }

func TestPoolGenerationsInvalidateStaleIDs(t *testing.T) {
	p := NewPool()

	a := p.Create()
	b := p.Create()
	require.NotEqual(t, a, b)
	require.True(t, p.Alive(a))
	require.True(t, p.Alive(b))

	p.Destroy(a)
	require.False(t, p.Alive(a))
	require.True(t, p.Alive(b))

	// Slot reuse must produce a distinct ID.
	c := p.Create()
	require.Equal(t, a.Index(), c.Index())
	require.NotEqual(t, a, c)
	require.True(t, p.Alive(c))
	require.False(t, p.Alive(a))

	// Double destroy of a stale ID must not kill the new tenant.
	p.Destroy(a)
	require.True(t, p.Alive(c))
}

func TestStoreSetGetRemove(t *testing.T) {
	s := NewStore[health]()
	p := NewPool()
	id := p.Create()

	_, ok := s.Get(id)
	require.False(t, ok)

	s.Set(id, &health{HP: 10})
	h, ok := s.Get(id)
	require.True(t, ok)
	require.Equal(t, 10, h.HP)
	require.Equal(t, 1, s.Len())

	s.Remove(id)
	require.False(t, s.Has(id))
}

func TestEach2VisitsOnlyIntersection(t *testing.T) {
	p := NewPool()
	hs := NewStore[health]()
	ts := NewStore[tag]()

	both := p.Create()
	onlyH := p.Create()
	onlyT := p.Create()

	hs.Set(both, &health{HP: 1})
	hs.Set(onlyH, &health{HP: 2})
	ts.Set(both, &tag{Name: "npc"})
	ts.Set(onlyT, &tag{Name: "prop"})

	seen := map[EntityID]bool{}
	Each2(hs, ts, func(id EntityID, h *health, tg *tag) {
		seen[id] = true
	})
	require.Equal(t, map[EntityID]bool{both: true}, seen)
}

func TestEach2OrderedIsAscending(t *testing.T) {
	p := NewPool()
	hs := NewStore[health]()
	ts := NewStore[tag]()

	var ids []EntityID
	for i := 0; i < 20; i++ {
		id := p.Create()
		hs.Set(id, &health{HP: i})
		ts.Set(id, &tag{})
		ids = append(ids, id)
	}

	var visited []EntityID
	Each2Ordered(hs, ts, func(id EntityID, _ *health, _ *tag) {
		visited = append(visited, id)
	})
	require.Len(t, visited, 20)
	for i := 1; i < len(visited); i++ {
		require.Less(t, visited[i-1], visited[i])
	}
}

func TestWorldDeferredDestroy(t *testing.T) {
	w := NewWorld()
	hs := NewStore[health]()
	w.Registry().Register(hs)

	id := w.CreateEntity()
	hs.Set(id, &health{HP: 5})

	w.MarkForDestruction(id)
	require.True(t, w.Alive(id), "destruction is deferred until flush")
	require.True(t, hs.Has(id))

	w.FlushDestroyQueue()
	require.False(t, w.Alive(id))
	require.False(t, hs.Has(id), "registry strips components on flush")

	// Flushing a stale queue entry is harmless.
	w.MarkForDestruction(id)
	w.FlushDestroyQueue()
}
