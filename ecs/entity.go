package ecs

import "fmt"

// Entity is a handle to a slot in one World. Destroying an entity bumps the
// slot's generation before the slot is reused, so a stale handle never
// resolves to the next occupant.
type Entity struct {
	slot uint32
	gen  uint32
}

func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.slot, e.gen)
}

// Valid reports whether e came from a World. The zero Entity never does.
func (e Entity) Valid() bool {
	return e.slot != 0
}
