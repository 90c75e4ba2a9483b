package wbs

import (
	"math"
	"time"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/domain"
)

// BarStyle holds the legibility floors for node bars.
type BarStyle struct {
	MinWidth      float64 // bars never render narrower than this
	LabelMinWidth float64 // narrower bars put their label outside
}

// DefaultBarStyle uses pixel floors sized for a graphical chart.
func DefaultBarStyle() BarStyle {
	return BarStyle{MinWidth: 20, LabelMinWidth: 60}
}

// Bar is the horizontal geometry of one WBS node.
type Bar struct {
	ID           string
	X            float64
	Width        float64
	LabelOutside bool
	Invalid      bool // end before start; drawn at the minimum width
}

// BarFor lays out node against the timeline start.
func BarFor(node domain.WBSItem, start time.Time, pixelsPerDay float64, style BarStyle) Bar {
	x := dategrid.DateToX(node.StartDate, start, pixelsPerDay)
	raw := dategrid.DateToX(node.EndDate, start, pixelsPerDay) - x
	width := math.Max(raw, style.MinWidth)
	return Bar{
		ID:           node.ID,
		X:            x,
		Width:        width,
		LabelOutside: math.Floor(width) < style.LabelMinWidth,
		Invalid:      node.EndDate.Before(node.StartDate),
	}
}
