package levels

import "testing"

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(catalog))
	}

	cases := []struct {
		name     string
		index    int
		crystals int
		required int
		hasExit  bool
		hasBoss  bool
		allies   int
	}{
		{"forest", 0, 4, 0, false, false, 1},
		{"wolf_trails", 1, 11, 10, true, false, 2},
		{"cyclops", 2, 6, 0, true, false, 1},
		{"dragon", 3, 0, 0, false, true, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := catalog[c.index]
			if lvl.Name == "" || lvl.StoryStart == "" || lvl.StoryComplete == "" {
				t.Fatalf("level %d is missing text", c.index)
			}
			if len(lvl.Crystals) != c.crystals {
				t.Fatalf("expected %d crystals, got %d", c.crystals, len(lvl.Crystals))
			}
			if lvl.RequiredCrystals != c.required {
				t.Fatalf("expected %d required crystals, got %d", c.required, lvl.RequiredCrystals)
			}
			if (lvl.Exit != nil) != c.hasExit {
				t.Fatalf("exit presence = %v, want %v", lvl.Exit != nil, c.hasExit)
			}
			if (lvl.Boss != nil) != c.hasBoss {
				t.Fatalf("boss presence = %v, want %v", lvl.Boss != nil, c.hasBoss)
			}
			if len(lvl.Allies) != c.allies {
				t.Fatalf("expected %d allies, got %d", c.allies, len(lvl.Allies))
			}
		})
	}

	boss := catalog[3].Boss
	if boss.Health != 4 || boss.FireRate != 1.4 {
		t.Fatalf("unexpected boss %+v", boss)
	}
	if !catalog[1].AllyBonusLife || catalog[0].AllyBonusLife {
		t.Fatalf("only the second level grants ally bonus lives")
	}
}

func TestLoadLevelEnemyRange(t *testing.T) {
	lvl, err := LoadLevelFromFS("01_forest.json")
	if err != nil {
		t.Fatalf("LoadLevelFromFS: %v", err)
	}
	if len(lvl.Enemies) != 1 {
		t.Fatalf("expected 1 enemy, got %d", len(lvl.Enemies))
	}
	wolf := lvl.Enemies[0]
	if wolf.Range == nil || wolf.Range[0] != 240 || wolf.Range[1] != 340 {
		t.Fatalf("unexpected wolf range %v", wolf.Range)
	}
}

func TestLoadLevelMissing(t *testing.T) {
	if _, err := LoadLevelFromFS("99_missing.json"); err == nil {
		t.Fatalf("expected error for missing level")
	}
}

func TestCatalogClamp(t *testing.T) {
	catalog := Catalog{{}, {}, {}}
	cases := []struct {
		in, want int
	}{
		{-1, 0},
		{0, 0},
		{2, 2},
		{7, 2},
	}
	for _, c := range cases {
		if got := catalog.Clamp(c.in); got != c.want {
			t.Fatalf("Clamp(%d) = %d, want %d", c.in, got, c.want)
		}
	}
	if catalog.LastIndex() != 2 {
		t.Fatalf("LastIndex = %d, want 2", catalog.LastIndex())
	}
}
