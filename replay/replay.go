package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/game"
	"github.com/milk9111/dragonlair/input"
)

// Frame is the input of one simulation step. Start, when set, restarts that
// level with a fresh player before the step runs.
type Frame struct {
	DT    float64     `json:"dt"`
	Input input.Flags `json:"input"`
	Start *int        `json:"start,omitempty"`
}

// Session is a recorded run: the level it started on with a fresh player and
// every step after that.
type Session struct {
	ID       uuid.UUID `json:"id"`
	Level    int       `json:"level"`
	Recorded time.Time `json:"recorded"`
	Frames   []Frame   `json:"frames"`
}

// Recorder collects frames from a game it observes.
type Recorder struct {
	session Session
	restart *int
}

// NewRecorder starts a session for a run beginning at level.
func NewRecorder(level int) *Recorder {
	return &Recorder{session: Session{
		ID:       uuid.New(),
		Level:    level,
		Recorded: time.Now().UTC(),
	}}
}

// Attach starts g's current level over with a fresh player and records from
// there on.
func Attach(g *game.Game) (*Recorder, error) {
	if err := g.Start(g.LevelIndex()); err != nil {
		return nil, err
	}
	r := NewRecorder(g.LevelIndex())
	g.Observe(r)
	return r, nil
}

func (r *Recorder) ObserveStep(dt float64, flags input.Flags) {
	r.session.Frames = append(r.session.Frames, Frame{DT: dt, Input: flags, Start: r.restart})
	r.restart = nil
}

// ObserveStart marks a restart made between steps. It is written into the
// next recorded frame; a restart with no step after it is not kept.
func (r *Recorder) ObserveStart(index int) {
	level := index
	r.restart = &level
}

// Session returns a copy of what has been recorded so far.
func (r *Recorder) Session() Session {
	s := r.session
	s.Frames = append([]Frame(nil), r.session.Frames...)
	return s
}

func (s Session) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("replay: encode %s: %w", s.ID, err)
	}
	return nil
}

func Decode(r io.Reader) (Session, error) {
	var s Session
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Session{}, fmt.Errorf("replay: decode: %w", err)
	}
	return s, nil
}

func (s Session) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: create %s: %w", path, err)
	}
	if err := s.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func LoadFile(path string) (Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return Session{}, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Player feeds a session into a game one frame at a time, so a presentation
// loop can show the replay at its own pace.
type Player struct {
	g       *game.Game
	session Session
	state   input.State
	next    int
	err     error
}

// NewPlayer restarts g on the session's level with a fresh player.
func NewPlayer(g *game.Game, s Session) (*Player, error) {
	if err := g.Start(s.Level); err != nil {
		return nil, fmt.Errorf("replay: start %s: %w", s.ID, err)
	}
	return &Player{g: g, session: s}, nil
}

// Next runs one recorded frame. It reports false once the session is over or
// a recorded restart failed.
func (p *Player) Next() ([]ecs.Event, bool) {
	if p.Done() {
		return nil, false
	}
	f := p.session.Frames[p.next]
	p.next++
	if f.Start != nil {
		if err := p.g.Start(*f.Start); err != nil {
			p.err = fmt.Errorf("replay: frame %d: %w", p.next-1, err)
			return nil, false
		}
	}
	p.state.Load(f.Input)
	return p.g.Step(f.DT, &p.state), true
}

func (p *Player) Done() bool {
	return p.err != nil || p.next >= len(p.session.Frames)
}

// Err reports the restart failure that ended playback early, if any.
func (p *Player) Err() error {
	return p.err
}

// Play runs a whole session into g.
func Play(g *game.Game, s Session) error {
	p, err := NewPlayer(g, s)
	if err != nil {
		return err
	}
	for {
		if _, ok := p.Next(); !ok {
			return p.Err()
		}
	}
}
