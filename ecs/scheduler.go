package ecs

// System is one simulation concern, run once per step.
type System interface {
	Update(w *World)
}

// Scheduler runs its systems in the order they were added; the order is the
// resolution order of a step.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{systems: make([]System, 0, len(systems))}
	s.Add(systems...)
	return s
}

// Add appends systems. Nil entries are dropped.
func (s *Scheduler) Add(systems ...System) {
	for _, sys := range systems {
		if sys != nil {
			s.systems = append(s.systems, sys)
		}
	}
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, sys := range s.systems {
		sys.Update(w)
	}
}

// Systems returns a copy of the run order.
func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
