package component

// Clock is the singleton step clock. DT is the duration of the step being
// simulated.
type Clock struct {
	DT      float64
	Elapsed float64
	Tick    uint64
}

var ClockComponent = NewComponent[Clock]()
