package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/dragonlair/prefabs"
)

// Shot is one fireball of a volley: the spawn offset from the boss corner
// and the initial velocity.
type Shot struct {
	DX, DY float64
	VX, VY float64
}

// DefaultVolley is fired when a boss has no script or its script fails.
var DefaultVolley = []Shot{
	{DX: 0, DY: 10, VX: -240, VY: -40},
	{DX: 0, DY: 30, VX: -260, VY: 0},
}

type volleyScript struct {
	name     string
	compiled *tengo.Compiled
}

func compileVolleyScript(name string) (*volleyScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	inputs := []struct {
		name  string
		value interface{}
	}{
		{"boss_x", 0.0},
		{"boss_y", 0.0},
		{"health", 0},
		{"volley", 0},
	}
	for _, in := range inputs {
		if err := script.Add(in.name, in.value); err != nil {
			return nil, fmt.Errorf("volley: %s: declare %s: %w", name, in.name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("volley: compile %s: %w", name, err)
	}
	return &volleyScript{name: name, compiled: compiled}, nil
}

func (v *volleyScript) shots(x, y float64, health, volley int) ([]Shot, error) {
	if err := v.compiled.Set("boss_x", x); err != nil {
		return nil, err
	}
	if err := v.compiled.Set("boss_y", y); err != nil {
		return nil, err
	}
	if err := v.compiled.Set("health", health); err != nil {
		return nil, err
	}
	if err := v.compiled.Set("volley", volley); err != nil {
		return nil, err
	}
	if err := v.compiled.Run(); err != nil {
		return nil, fmt.Errorf("volley: run %s: %w", v.name, err)
	}
	if !v.compiled.IsDefined("shots") {
		return nil, fmt.Errorf("volley: %s does not define shots", v.name)
	}

	raw := v.compiled.Get("shots").Array()
	out := make([]Shot, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("volley: %s shot %d is not a map", v.name, i)
		}
		out = append(out, Shot{
			DX: number(m["dx"]),
			DY: number(m["dy"]),
			VX: number(m["vx"]),
			VY: number(m["vy"]),
		})
	}
	return out, nil
}

func number(v interface{}) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
