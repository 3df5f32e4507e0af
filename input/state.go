package input

// Action is a logical player action.
type Action int

const (
	MoveLeft Action = iota
	MoveRight
	Jump
	Attack
)

// Flags is the set of actions held at one instant.
type Flags struct {
	Left   bool `json:"left,omitempty"`
	Right  bool `json:"right,omitempty"`
	Jump   bool `json:"jump,omitempty"`
	Attack bool `json:"attack,omitempty"`
}

var keyActions = map[string]Action{
	"ArrowLeft":  MoveLeft,
	"a":          MoveLeft,
	"A":          MoveLeft,
	"ArrowRight": MoveRight,
	"d":          MoveRight,
	"D":          MoveRight,
	" ":          Jump,
	"Spacebar":   Jump,
	"x":          Attack,
	"X":          Attack,
}

// ActionForKey maps a key name to its action.
func ActionForKey(key string) (Action, bool) {
	a, ok := keyActions[key]
	return a, ok
}

// State is the mutable record of held actions. Hosts update it from raw key
// events; the simulation reads it once per step and may consume a press.
type State struct {
	flags Flags
}

// KeyDown marks the key's action held. It reports whether the key is mapped.
func (s *State) KeyDown(key string) bool {
	a, ok := ActionForKey(key)
	if ok {
		s.Set(a, true)
	}
	return ok
}

// KeyUp clears the key's action.
func (s *State) KeyUp(key string) bool {
	a, ok := ActionForKey(key)
	if ok {
		s.Set(a, false)
	}
	return ok
}

func (s *State) Set(a Action, held bool) {
	switch a {
	case MoveLeft:
		s.flags.Left = held
	case MoveRight:
		s.flags.Right = held
	case Jump:
		s.flags.Jump = held
	case Attack:
		s.flags.Attack = held
	}
}

func (s *State) Held(a Action) bool {
	switch a {
	case MoveLeft:
		return s.flags.Left
	case MoveRight:
		return s.flags.Right
	case Jump:
		return s.flags.Jump
	case Attack:
		return s.flags.Attack
	}
	return false
}

// Consume clears a held action until the host reports a fresh press.
func (s *State) Consume(a Action) {
	s.Set(a, false)
}

func (s *State) Flags() Flags {
	if s == nil {
		return Flags{}
	}
	return s.flags
}

// Load replaces every flag, used when replaying recorded input.
func (s *State) Load(f Flags) {
	s.flags = f
}

func (s *State) Reset() {
	s.flags = Flags{}
}
