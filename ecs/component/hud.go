package component

type StatusTone int

const (
	ToneNone StatusTone = iota
	ToneGood
	ToneBad
)

// HUD holds the story line and the status banner shown above the field.
type HUD struct {
	Message string
	Status  string
	Tone    StatusTone
}

var HUDComponent = NewComponent[HUD]()
