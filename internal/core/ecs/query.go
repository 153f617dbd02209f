package ecs

import "sort"

// Each2 visits entities that have both component A and B, iterating the
// smaller store and probing the larger.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				fn(id, a, b)
			}
		}
	} else {
		for id, b := range sb.data {
			if a, ok := sa.data[id]; ok {
				fn(id, a, b)
			}
		}
	}
}

// Each2Ordered is Each2 with ascending entity ID visit order, for
// systems whose mutations must be reproducible.
func Each2Ordered[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	ids := make([]EntityID, 0, min(sa.Len(), sb.Len()))
	if sa.Len() <= sb.Len() {
		for id := range sa.data {
			if sb.Has(id) {
				ids = append(ids, id)
			}
		}
	} else {
		for id := range sb.data {
			if sa.Has(id) {
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn(id, sa.data[id], sb.data[id])
	}
}

// Each3 visits entities that have components A, B and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	Each2(sa, sb, func(id EntityID, a *A, b *B) {
		if c, ok := sc.data[id]; ok {
			fn(id, a, b, c)
		}
	})
}
