package component

// Pit is a hazard span on the ground line.
type Pit struct {
	X     float64
	Width float64
}

var PitComponent = NewComponent[Pit]()
