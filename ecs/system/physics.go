package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/prefabs"
)

// PhysicsSystem integrates the player and resolves landings on platform
// tops. Platforms are one-way: only a bottom edge crossing the top surface
// during the step counts as a landing.
type PhysicsSystem struct {
	gravity    float64
	fallMargin float64
	edgeSlack  float64
}

func NewPhysicsSystem(spec prefabs.WorldSpec) *PhysicsSystem {
	return &PhysicsSystem{
		gravity:    spec.Physics.Gravity,
		fallMargin: spec.Field.FallMargin,
		edgeSlack:  spec.Field.EdgeSlack,
	}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	p, ok := findPlayer(w)
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, p.entity, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	ctrl, ok := ecs.Get(w, p.entity, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	in, ok := ecs.Get(w, p.entity, component.InputComponent.Kind())
	if !ok {
		in = &component.Input{}
	}

	dt := stepDT(w)
	t := p.transform
	body := p.body

	vel.Y += s.gravity * dt
	move := 0.0
	if in.Left {
		move--
	}
	if in.Right {
		move++
	}
	vel.X = move * ctrl.MoveSpeed

	t.X += vel.X * dt
	t.Y += vel.Y * dt

	ctrl.Grounded = false
	ecs.ForEach3(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, _ *component.Platform, pt *component.Transform, pb *component.Body) {
		prevY := t.Y - vel.Y*dt
		if t.X+body.Width > pt.X &&
			t.X < pt.X+pb.Width &&
			prevY+body.Height <= pt.Y &&
			t.Y+body.Height >= pt.Y {
			t.Y = pt.Y - body.Height
			vel.Y = 0
			ctrl.Grounded = true
		}
	})

	if ctrl.Grounded && in.Jump {
		vel.Y = -ctrl.JumpSpeed
		ctrl.Grounded = false
	}

	t.X = cp.Clamp(t.X, -s.edgeSlack, common.FieldWidth-body.Width+s.edgeSlack)
	if t.Y > common.FieldHeight+s.fallMargin {
		loseLife(w, common.ReasonChasm)
	}
}
