package component

// Velocity in field units per second.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Body is the axis-aligned extent anchored at Transform.
type Body struct {
	Width  float64
	Height float64
}

var BodyComponent = NewComponent[Body]()
