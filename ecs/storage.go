package ecs

// slotState is one entry of the entity table.
type slotState struct {
	gen   uint32
	alive bool
}

// entityStore hands out entities and recycles destroyed slots LIFO. Slot n
// lives at slots[n-1]; slot 0 is reserved for the zero Entity.
type entityStore struct {
	slots []slotState
	free  []uint32
	count int
}

func (s *entityStore) create() Entity {
	var slot uint32
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slotState{})
		slot = uint32(len(s.slots))
	}
	st := &s.slots[slot-1]
	st.alive = true
	s.count++
	return Entity{slot: slot, gen: st.gen}
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	st := &s.slots[e.slot-1]
	st.alive = false
	st.gen++
	s.free = append(s.free, e.slot)
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if e.slot == 0 || int(e.slot) > len(s.slots) {
		return false
	}
	st := s.slots[e.slot-1]
	return st.alive && st.gen == e.gen
}

// live lists the alive entities by slot.
func (s *entityStore) live() []Entity {
	out := make([]Entity, 0, s.count)
	for i, st := range s.slots {
		if st.alive {
			out = append(out, Entity{slot: uint32(i + 1), gen: st.gen})
		}
	}
	return out
}
