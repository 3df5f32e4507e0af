package component

// Invulnerable marks an entity as temporarily immune to damage. The
// invulnerability system counts Seconds down and removes the component when
// it reaches zero.
type Invulnerable struct {
	Seconds float64
}

var InvulnerableComponent = NewComponent[Invulnerable]()
