package ecs

// sparseSet stores one component kind keyed by entity slot id. Dense order is
// insertion order and removal keeps the remaining order intact, so iteration
// follows the order entities were authored in.
type sparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func (s *sparseSet) index(e Entity) int {
	id := int(e.slot)
	if id <= 0 || id > len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return -1
	}
	return idx
}

func (s *sparseSet) has(e Entity) bool {
	return s.index(e) >= 0
}

func (s *sparseSet) get(e Entity) any {
	idx := s.index(e)
	if idx < 0 {
		return nil
	}
	return s.values[idx]
}

func (s *sparseSet) set(e Entity, v any) {
	id := int(e.slot)
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.index(e); idx >= 0 {
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet) remove(e Entity) bool {
	idx := s.index(e)
	if idx < 0 {
		return false
	}
	copy(s.dense[idx:], s.dense[idx+1:])
	copy(s.values[idx:], s.values[idx+1:])
	last := len(s.dense) - 1
	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[e.slot-1] = -1
	for i := idx; i < len(s.dense); i++ {
		s.sparse[s.dense[i].slot-1] = i
	}
	return true
}

// entities returns a copy of the dense entity list so callers may mutate the
// set while iterating.
func (s *sparseSet) entities() []Entity {
	if s == nil || len(s.dense) == 0 {
		return nil
	}
	return append([]Entity(nil), s.dense...)
}
