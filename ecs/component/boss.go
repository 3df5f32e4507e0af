package component

// Boss stores the dragon's encounter state.
type Boss struct {
	Health     int
	FireRate   float64
	Cooldown   float64
	MeleeRange float64
	Defeated   bool
	// Script names a volley script under prefabs/scripts. Empty uses the
	// built-in volley.
	Script string
	Volley int
}

var BossComponent = NewComponent[Boss]()
