package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is an authored level definition. It is never mutated at runtime;
// the simulation projects it into fresh entities on every attempt.
type Level struct {
	Name             string     `json:"name"`
	StoryStart       string     `json:"story_start"`
	StoryComplete    string     `json:"story_complete"`
	PlayerStart      Point      `json:"player_start"`
	Platforms        []Platform `json:"platforms"`
	Crystals         []Point    `json:"crystals"`
	Allies           []Ally     `json:"allies"`
	AllyBonusLife    bool       `json:"ally_bonus_life,omitempty"`
	Enemies          []Enemy    `json:"enemies"`
	Pits             []Pit      `json:"pits"`
	Exit             *Rect      `json:"exit,omitempty"`
	RequiredCrystals int        `json:"required_crystals"`
	Boss             *Boss      `json:"boss,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Platform struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Moving bool    `json:"moving,omitempty"`
	Axis   string  `json:"axis,omitempty"`
	Range  float64 `json:"range,omitempty"`
	Speed  float64 `json:"speed,omitempty"`
}

type Ally struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Message string  `json:"message"`
}

type Enemy struct {
	Kind   string      `json:"kind"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Dir    float64     `json:"dir"`
	Range  *[2]float64 `json:"range,omitempty"`
}

type Pit struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

type Boss struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Health   int     `json:"health"`
	FireRate float64 `json:"fire_rate"`
	Script   string  `json:"script,omitempty"`
}

// LoadLevelFromFS reads one level, preferring levels/<name> on disk over the
// embedded copy.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := os.ReadFile(filepath.Join("levels", name))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	return &lvl, nil
}

// Catalog is the ordered level sequence.
type Catalog []*Level

// LoadCatalog loads every embedded level in filename order.
func LoadCatalog() (Catalog, error) {
	names, err := fs.Glob(LevelsFS, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("list levels: no level files embedded")
	}

	catalog := make(Catalog, 0, len(names))
	for _, name := range names {
		lvl, err := LoadLevelFromFS(name)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, lvl)
	}
	return catalog, nil
}

// LastIndex is the index of the final level.
func (c Catalog) LastIndex() int {
	return len(c) - 1
}

// Clamp maps any index into the catalog range.
func (c Catalog) Clamp(index int) int {
	if index < 0 || len(c) == 0 {
		return 0
	}
	if index > c.LastIndex() {
		return c.LastIndex()
	}
	return index
}
