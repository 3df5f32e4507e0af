package component

type Crystal struct {
	Collected bool
}

var CrystalComponent = NewComponent[Crystal]()

type Ally struct {
	Message string
	Rescued bool
}

var AllyComponent = NewComponent[Ally]()
