package drag

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// ErrSessionActive is returned when a press arrives during a gesture.
var ErrSessionActive = errors.New("a drag session is already active")

type State int

const (
	StateIdle State = iota
	StateDragging
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Committer is the single entry point through which a gesture writes dates.
type Committer interface {
	CommitCandidate(itemID string, date time.Time, endDate *time.Time) error
}

// ItemSource resolves the current state of the drag target.
type ItemSource interface {
	ItemByID(id string) (domain.TimelineItem, bool)
}

// flusher is implemented by committers that buffer candidates until release.
type flusher interface {
	Flush() error
}

// discarder is implemented by committers that can drop a buffered candidate.
type discarder interface {
	Discard()
}

// Outcome reports what a Move, Release or Cancel did.
type Outcome struct {
	Candidate Candidate
	Committed bool
	Cancelled bool
}

// Engine runs one gesture at a time. It is not safe for concurrent use and
// is driven from the UI event loop.
type Engine struct {
	items   ItemSource
	commit  Committer
	state   State
	session Session
}

func NewEngine(items ItemSource, commit Committer) *Engine {
	return &Engine{items: items, commit: commit}
}

func (e *Engine) State() State { return e.state }

// Session returns the active session, or a zero Session when idle.
func (e *Engine) Session() Session { return e.session }

func (e *Engine) Dragging() bool { return e.state == StateDragging }

// Press starts a gesture on item. Nothing is written yet.
func (e *Engine) Press(item domain.TimelineItem, pointerX float64, mode Mode) error {
	if e.state == StateDragging {
		return ErrSessionActive
	}
	s := Session{
		Active:         true,
		TargetItemID:   item.ID,
		PointerOriginX: pointerX,
		OriginDate:     domain.Day(item.Date),
		Mode:           mode,
	}
	if item.IsRange() && item.EndDate != nil {
		s.OriginEndDate = domain.DatePtr(*item.EndDate)
	}
	e.session = s
	e.state = StateDragging
	return nil
}

// Move commits the candidate for the current pointer position. A target
// that vanished from the source ends the session without error.
func (e *Engine) Move(pointerX, pixelsPerDay float64) (Outcome, error) {
	if e.state != StateDragging {
		return Outcome{}, nil
	}
	if !(pixelsPerDay > 0) {
		return Outcome{}, fmt.Errorf("drag move: %w (got %v)", domain.ErrInvalidZoom, pixelsPerDay)
	}
	if _, ok := e.items.ItemByID(e.session.TargetItemID); !ok {
		e.session = Session{}
		e.state = StateCancelled
		e.discard()
		return Outcome{Cancelled: true}, nil
	}

	delta := (pointerX - e.session.PointerOriginX) / pixelsPerDay
	c := e.session.Candidate(delta)
	if err := e.commit.CommitCandidate(c.ItemID, c.Date, c.EndDate); err != nil {
		return Outcome{Candidate: c}, fmt.Errorf("commit %s: %w", c.ItemID, err)
	}
	return Outcome{Candidate: c, Committed: true}, nil
}

// Release ends the gesture. The last committed position stands; buffering
// committers are flushed.
func (e *Engine) Release() (Outcome, error) {
	switch e.state {
	case StateCancelled:
		e.state = StateIdle
		e.discard()
		return Outcome{Cancelled: true}, nil
	case StateIdle:
		return Outcome{}, nil
	}

	e.session = Session{}
	e.state = StateIdle
	if f, ok := e.commit.(flusher); ok {
		if err := f.Flush(); err != nil {
			return Outcome{}, fmt.Errorf("flush drag: %w", err)
		}
		return Outcome{Committed: true}, nil
	}
	return Outcome{}, nil
}

// Cancel aborts the gesture. A buffered candidate is dropped; live commits
// are undone by writing the origin dates back.
func (e *Engine) Cancel() (Outcome, error) {
	if e.state != StateDragging {
		e.state = StateIdle
		e.discard()
		return Outcome{}, nil
	}
	s := e.session
	e.session = Session{}
	e.state = StateIdle
	c := s.Candidate(0)

	if e.discard() {
		return Outcome{Candidate: c, Cancelled: true}, nil
	}
	if _, ok := e.items.ItemByID(s.TargetItemID); !ok {
		return Outcome{Cancelled: true}, nil
	}
	if err := e.commit.CommitCandidate(c.ItemID, c.Date, c.EndDate); err != nil {
		return Outcome{Candidate: c, Cancelled: true}, fmt.Errorf("restore %s: %w", c.ItemID, err)
	}
	return Outcome{Candidate: c, Committed: true, Cancelled: true}, nil
}

// discard drops any candidate held by a buffering committer and reports
// whether the committer buffers.
func (e *Engine) discard() bool {
	d, ok := e.commit.(discarder)
	if ok {
		d.Discard()
	}
	return ok
}
