package common

// The playfield matches the fixed-size rendering surface.
const (
	FieldWidth  = 900
	FieldHeight = 600
)

// Hazard reasons reported with a lost life.
const (
	ReasonChasm  = "Fell into a chasm"
	ReasonEnemy  = "Hit by an enemy"
	ReasonPit    = "Fell into a pit"
	ReasonDragon = "Burned by dragon fire"
)

// ProgressKey is the storage key of the persisted progress record.
const ProgressKey = "elves-dragon-progress"
