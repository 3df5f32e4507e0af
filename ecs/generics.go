package ecs

import (
	"fmt"

	"github.com/milk9111/dragonlair/ecs/component"
)

// Add attaches value to e, replacing any previous component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("ecs: add %s: %w", kind.Name(), component.ErrNilComponent)
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("ecs: add %s to %v: %w", kind.Name(), e, component.ErrEntityNotAlive)
	}
	w.store(kind.ID(), true).set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := w.store(kind.ID(), false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := w.store(kind.ID(), false)
	return s != nil && IsAlive(w, e) && s.has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	s := w.store(kind.ID(), false)
	if s == nil || !IsAlive(w, e) {
		return nil, false
	}
	v, ok := s.get(e).(*T)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
