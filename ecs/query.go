package ecs

import "github.com/milk9111/dragonlair/ecs/component"

// First returns the first live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := w.store(kind.ID(), false)
	if s == nil {
		return Entity{}, false
	}
	for _, e := range s.dense {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return Entity{}, false
}

// ForEach calls fn for every live entity carrying kind, in insertion order.
// fn may add, remove or destroy entities; entities destroyed or stripped of
// the component before their turn are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range s.entities() {
		v, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if fn == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := Get(w, e, kb)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if fn == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := Get(w, e, kc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}
