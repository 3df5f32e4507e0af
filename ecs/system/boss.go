package system

import (
	"fmt"
	"log"

	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/prefabs"
)

// BossSystem fires volleys while the boss is alive. The cooldown starts at
// zero, so the first volley leaves on the first step of the level.
type BossSystem struct {
	fireball prefabs.BossSpec

	scripts map[string]*volleyScript
	failed  map[string]bool
}

func NewBossSystem(spec prefabs.WorldSpec) *BossSystem {
	return &BossSystem{
		fireball: spec.Boss,
		scripts:  map[string]*volleyScript{},
		failed:   map[string]bool{},
	}
}

// ResetScripts drops compiled volley scripts so the next volley reloads them.
func (s *BossSystem) ResetScripts() {
	if s == nil {
		return
	}
	s.scripts = map[string]*volleyScript{}
	s.failed = map[string]bool{}
}

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := stepDT(w)
	ecs.ForEach2(w, component.BossComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Boss, t *component.Transform) {
		if b.Defeated {
			return
		}
		b.Cooldown -= dt
		if b.Cooldown > 0 {
			return
		}
		b.Cooldown = b.FireRate

		for _, shot := range s.volley(b, t) {
			if _, err := s.spawnFireball(w, t.X+shot.DX, t.Y+shot.DY, shot.VX, shot.VY); err != nil {
				log.Printf("boss: %v", err)
			}
		}
		b.Volley++
	})
}

func (s *BossSystem) volley(b *component.Boss, t *component.Transform) []Shot {
	if b.Script == "" || s.failed[b.Script] {
		return DefaultVolley
	}

	vs, ok := s.scripts[b.Script]
	if !ok {
		var err error
		vs, err = compileVolleyScript(b.Script)
		if err != nil {
			log.Printf("boss: volley script %s: %v; using built-in volley", b.Script, err)
			s.failed[b.Script] = true
			return DefaultVolley
		}
		s.scripts[b.Script] = vs
	}

	shots, err := vs.shots(t.X, t.Y, b.Health, b.Volley)
	if err != nil {
		log.Printf("boss: %v; using built-in volley", err)
		s.failed[b.Script] = true
		return DefaultVolley
	}
	return shots
}

func (s *BossSystem) spawnFireball(w *ecs.World, x, y, vx, vy float64) (ecs.Entity, error) {
	size := s.fireball.FireballSize
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		ecs.DestroyEntity(w, e)
		return ecs.Entity{}, fmt.Errorf("fireball: %w", err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Width: size, Height: size}); err != nil {
		ecs.DestroyEntity(w, e)
		return ecs.Entity{}, fmt.Errorf("fireball: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy}); err != nil {
		ecs.DestroyEntity(w, e)
		return ecs.Entity{}, fmt.Errorf("fireball: %w", err)
	}
	err := ecs.Add(w, e, component.FireballComponent.Kind(), &component.Fireball{
		Lifetime: s.fireball.FireballLifetime,
		Gravity:  s.fireball.FireballGravity,
	})
	if err != nil {
		ecs.DestroyEntity(w, e)
		return ecs.Entity{}, fmt.Errorf("fireball: %w", err)
	}
	return e, nil
}
