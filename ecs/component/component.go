package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("component: entity is not alive")
	ErrNilComponent         = errors.New("component: nil value")
	ErrInvalidComponentKind = errors.New("component: zero component kind")
)

// ComponentID numbers a component type. IDs come from one process-wide
// counter at package init, so every World agrees on them; 0 is the zero kind.
type ComponentID uint32

var lastComponentID atomic.Uint32

// ComponentKind is the typed key for storing T in a World.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(lastComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Name is the Go type stored under k, for error and debug text.
func (k ComponentKind[T]) Name() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// ComponentHandle is how component files declare their kind:
//
//	var BossComponent = NewComponent[Boss]()
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
