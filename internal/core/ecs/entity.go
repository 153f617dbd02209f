package ecs

// EntityID packs a 32-bit slot index in the low bits and a 32-bit
// generation in the high bits. The generation bumps on destroy, so a
// full 64-bit ID is never handed out twice even when slots are reused,
// and stale references can be detected in O(1).
type EntityID uint64

func MakeEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// Pool allocates entity IDs from a free list with generational indices.
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

func (p *Pool) Create() EntityID {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return MakeEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return MakeEntityID(idx, p.generations[idx])
}

// Alive reports whether id refers to a live entity (its generation
// matches the slot's current generation).
func (p *Pool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Destroy invalidates id and recycles its slot. Destroying a stale or
// unknown ID is a no-op.
func (p *Pool) Destroy(id EntityID) {
	idx := id.Index()
	if idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// Live returns the number of live entities.
func (p *Pool) Live() int {
	return int(p.nextIndex) - len(p.freeList)
}
