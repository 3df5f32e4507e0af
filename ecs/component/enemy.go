package component

type EnemyKind string

const (
	EnemyWolf    EnemyKind = "wolf"
	EnemyCyclops EnemyKind = "cyclops"
)

// Enemy patrols [Min, Max] along x when Patrol is set.
type Enemy struct {
	Kind   EnemyKind
	Dir    float64
	Speed  float64
	Patrol bool
	Min    float64
	Max    float64
}

var EnemyComponent = NewComponent[Enemy]()
