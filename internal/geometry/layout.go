package geometry

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// RowBand is the vertical slot of one row.
type RowBand struct {
	RowID  string
	Label  string
	Y      float64
	Height float64
}

// Contains reports whether y falls inside the band.
func (r RowBand) Contains(y float64) bool {
	return y >= r.Y && y < r.Y+r.Height
}

// Placed is an item shape positioned inside its row.
type Placed struct {
	Shape
	RowID   string
	CenterY float64
}

// Problem records an item skipped during layout.
type Problem struct {
	ItemID string
	Err    error
}

// ChartLayout is the full derived geometry of a timeline.
type ChartLayout struct {
	Start        time.Time
	PixelsPerDay float64
	Rows         []RowBand
	Items        []Placed
	Problems     []Problem
	Height       float64
}

// RowHeightFunc returns the height of a row in layout units.
type RowHeightFunc func(domain.TimelineRow) float64

// DataRowHeight uses the pixel height stored on the row.
func DataRowHeight(r domain.TimelineRow) float64 {
	if r.Height <= 0 {
		return domain.DefaultRowHeight
	}
	return float64(r.Height)
}

// Layout places every row and item using the rows' stored heights.
func Layout(data domain.TimelineData, view domain.ViewConfig) ChartLayout {
	return LayoutWith(data, view.PixelsPerDay, DataRowHeight)
}

// LayoutWith is Layout with a custom row height, used by renderers whose
// vertical unit differs from the data's pixels.
func LayoutWith(data domain.TimelineData, pixelsPerDay float64, rowHeight RowHeightFunc) ChartLayout {
	l := ChartLayout{
		Start:        domain.Day(data.StartDate),
		PixelsPerDay: pixelsPerDay,
	}

	bands := make(map[string]RowBand, len(data.Rows))
	y := 0.0
	for _, r := range data.Rows {
		h := rowHeight(r)
		band := RowBand{RowID: r.ID, Label: r.Label, Y: y, Height: h}
		l.Rows = append(l.Rows, band)
		bands[r.ID] = band
		y += h
	}
	l.Height = y

	for _, it := range data.Items {
		band, ok := bands[it.RowID]
		if !ok {
			l.Problems = append(l.Problems, Problem{
				ItemID: it.ID,
				Err:    fmt.Errorf("%w: item %q references row %q", ErrUnknownRow, it.ID, it.RowID),
			})
			continue
		}
		shape, err := ForItem(it, l.Start, pixelsPerDay)
		if err != nil {
			l.Problems = append(l.Problems, Problem{ItemID: it.ID, Err: err})
			continue
		}
		l.Items = append(l.Items, Placed{
			Shape:   shape,
			RowID:   it.RowID,
			CenterY: band.Y + band.Height/2,
		})
	}
	return l
}

// Row returns the band of a row.
func (l ChartLayout) Row(id string) (RowBand, bool) {
	for _, r := range l.Rows {
		if r.RowID == id {
			return r, true
		}
	}
	return RowBand{}, false
}

// RowAt returns the band containing y.
func (l ChartLayout) RowAt(y float64) (RowBand, bool) {
	for _, r := range l.Rows {
		if r.Contains(y) {
			return r, true
		}
	}
	return RowBand{}, false
}

// Item returns the placed shape of an item.
func (l ChartLayout) Item(id string) (Placed, bool) {
	for _, p := range l.Items {
		if p.ItemID == id {
			return p, true
		}
	}
	return Placed{}, false
}

// ItemsInRow returns the placed items of a row in draw order.
func (l ChartLayout) ItemsInRow(rowID string) []Placed {
	var out []Placed
	for _, p := range l.Items {
		if p.RowID == rowID {
			out = append(out, p)
		}
	}
	return out
}
