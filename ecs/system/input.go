package system

import (
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/input"
)

// InputSystem copies the bound input state into every Input component at the
// start of a step.
type InputSystem struct {
	source *input.State
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Bind sets the state read by the next Update. A nil state reads as nothing
// held.
func (s *InputSystem) Bind(state *input.State) {
	s.source = state
}

// Commit hands consumed presses back to the bound state so a held key has to
// be released and pressed again before it acts twice.
func (s *InputSystem) Commit(w *ecs.World) {
	if w == nil || s.source == nil {
		return
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		if in.AttackConsumed {
			s.source.Consume(input.Attack)
		}
	})
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	flags := s.source.Flags()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		*in = component.Input{
			Left:   flags.Left,
			Right:  flags.Right,
			Jump:   flags.Jump,
			Attack: flags.Attack,
		}
	})
}
