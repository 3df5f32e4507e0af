package component

// Fireball is a boss projectile. Gravity is added to the vertical velocity
// every second of flight.
type Fireball struct {
	Age      float64
	Lifetime float64
	Gravity  float64
}

var FireballComponent = NewComponent[Fireball]()
