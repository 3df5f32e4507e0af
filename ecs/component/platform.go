package component

type PlatformAxis string

const (
	AxisX PlatformAxis = "x"
	AxisY PlatformAxis = "y"
)

// Platform is a solid top surface. Moving platforms oscillate along Axis;
// Offset is the accumulated travel from the authored origin.
type Platform struct {
	Moving bool
	Axis   PlatformAxis
	Range  float64
	Speed  float64
	Offset float64
	Dir    float64
}

var PlatformComponent = NewComponent[Platform]()
