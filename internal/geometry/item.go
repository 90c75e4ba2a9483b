// Package geometry maps schedule items to screen shapes and places rows
// vertically. Every function is a pure function of its inputs.
package geometry

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/domain"
)

var (
	// ErrInvalidRange marks a range item that cannot be drawn: its end is
	// missing or before its start.
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnknownRow marks an item whose row does not exist.
	ErrUnknownRow = errors.New("unknown row")
)

type ShapeKind int

const (
	ShapePoint ShapeKind = iota
	ShapeBar
)

func (k ShapeKind) String() string {
	if k == ShapeBar {
		return "bar"
	}
	return "point"
}

// Shape is the horizontal footprint of one item. Width is zero for points.
type Shape struct {
	ItemID   string
	Kind     ShapeKind
	X        float64
	Width    float64
	Critical bool // secondary marker only, no geometric effect
	Color    string
}

// EndX returns the right edge of the shape.
func (s Shape) EndX() float64 {
	return s.X + s.Width
}

// ForItem computes the shape of an item. Ranges with a missing or inverted
// end yield ErrInvalidRange and no shape; callers skip them.
func ForItem(item domain.TimelineItem, start time.Time, pixelsPerDay float64) (Shape, error) {
	s := Shape{
		ItemID:   item.ID,
		Kind:     ShapePoint,
		X:        dategrid.DateToX(item.Date, start, pixelsPerDay),
		Critical: item.IsCritical,
		Color:    item.Color,
	}
	if !item.IsRange() {
		return s, nil
	}

	if item.EndDate == nil {
		return Shape{}, fmt.Errorf("%w: item %q has no end date", ErrInvalidRange, item.ID)
	}
	width := dategrid.DateToX(*item.EndDate, start, pixelsPerDay) - s.X
	if width < 0 {
		return Shape{}, fmt.Errorf("%w: item %q ends %s before it starts %s", ErrInvalidRange, item.ID,
			dategrid.FormatDate(*item.EndDate), dategrid.FormatDate(item.Date))
	}
	s.Kind = ShapeBar
	s.Width = width
	return s, nil
}
