package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type ExitTag struct{}

var ExitTagComponent = NewComponent[ExitTag]()
