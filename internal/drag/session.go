// Package drag implements the pointer gesture state machine that turns
// horizontal pointer motion into new item dates.
package drag

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/geometry"
)

type Mode string

const (
	ModeMove        Mode = "move"
	ModeResizeStart Mode = "resize-start"
	ModeResizeEnd   Mode = "resize-end"
)

// ParseMode converts a flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "move":
		return ModeMove, nil
	case "resize-start", "start":
		return ModeResizeStart, nil
	case "resize-end", "end":
		return ModeResizeEnd, nil
	default:
		return "", fmt.Errorf("unknown drag mode %q (expected move|resize-start|resize-end)", s)
	}
}

// ModeForHandle maps the part of a shape under the pointer to a gesture.
func ModeForHandle(h geometry.Handle) Mode {
	switch h {
	case geometry.HandleStart:
		return ModeResizeStart
	case geometry.HandleEnd:
		return ModeResizeEnd
	default:
		return ModeMove
	}
}

// Session is the state captured at pointer press. It lives for one gesture.
type Session struct {
	Active         bool
	TargetItemID   string
	PointerOriginX float64
	OriginDate     time.Time
	OriginEndDate  *time.Time // nil unless the target is a range
	Mode           Mode
}

// Candidate is a proposed pair of dates for the target item.
type Candidate struct {
	ItemID  string
	Date    time.Time
	EndDate *time.Time
}

// Candidate derives the dates for a pointer displacement of deltaDays from
// the origin. Moves shift both edges by the same whole-day delta. Resizes
// move one edge and never let it reach the opposite edge; a resize on a
// point item behaves as a move.
func (s Session) Candidate(deltaDays float64) Candidate {
	n := int(math.Round(deltaDays))
	c := Candidate{ItemID: s.TargetItemID, Date: s.OriginDate}
	if s.OriginEndDate != nil {
		end := *s.OriginEndDate
		c.EndDate = &end
	}
	if n == 0 {
		return c
	}

	mode := s.Mode
	if s.OriginEndDate == nil {
		mode = ModeMove
	}

	switch mode {
	case ModeResizeStart:
		start := dategrid.AddDays(s.OriginDate, n)
		if !start.Before(*c.EndDate) {
			start = dategrid.AddDays(*c.EndDate, -1)
		}
		c.Date = start
	case ModeResizeEnd:
		end := dategrid.AddDays(*s.OriginEndDate, n)
		if !end.After(c.Date) {
			end = dategrid.AddDays(c.Date, 1)
		}
		c.EndDate = &end
	default:
		c.Date = dategrid.AddDays(s.OriginDate, n)
		if c.EndDate != nil {
			end := dategrid.AddDays(*s.OriginEndDate, n)
			c.EndDate = &end
		}
	}
	return c
}
