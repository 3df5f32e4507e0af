package component

// LevelState is the singleton describing the level attempt in progress.
type LevelState struct {
	Index         int
	Name          string
	CompleteText  string
	StartX        float64
	StartY        float64
	Required      int
	TotalCrystals int
	Allies        int
	AllyBonusLife bool
	HasExit       bool
	Final         bool
	// AdvanceDelay is how long the completion banner shows before the next
	// level loads.
	AdvanceDelay float64
	// Immunity is how long the player ignores damage after losing a life.
	Immunity float64

	Completed    bool
	AdvanceTimer float64
	Advanced     bool
}

var LevelStateComponent = NewComponent[LevelState]()
