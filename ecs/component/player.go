package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
	Grounded  bool
}

var PlayerComponent = NewComponent[Player]()

// Lives counts remaining attempts. Gains never raise Count above Max.
type Lives struct {
	Count int
	Max   int
}

var LivesComponent = NewComponent[Lives]()

// CrystalTally tracks crystals collected in the current level and over the
// whole run.
type CrystalTally struct {
	Collected int
	Lifetime  int
}

var CrystalTallyComponent = NewComponent[CrystalTally]()
