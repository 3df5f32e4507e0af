package component

// Input stores the logical actions held for the current step.
type Input struct {
	Left   bool
	Right  bool
	Jump   bool
	Attack bool
	// AttackConsumed is set when a system used the attack press this step; the
	// host clears the held flag in its input state so it cannot repeat.
	AttackConsumed bool
}

var InputComponent = NewComponent[Input]()
