package formatter

import (
	"math"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geometry"
	"github.com/alexanderramin/gantt/internal/timegrid"
	"github.com/charmbracelet/lipgloss"
)

// ChartFrame is everything needed to paint one chart frame. Layout units
// are terminal cells horizontally and lines vertically.
type ChartFrame struct {
	Grid         timegrid.Grid
	Layout       geometry.ChartLayout
	Items        []domain.TimelineItem
	Width        int // whole frame, sidebar included
	SidebarWidth int
	ScrollX      int
	SelectedRow  string
	ActiveItem   string
}

// ChartCells returns the number of timeline columns visible in the frame.
func (f ChartFrame) ChartCells() int {
	return max(f.Width-f.SidebarWidth, 0)
}

// HeaderLines is the number of lines above the chart body.
func (f ChartFrame) HeaderLines() int {
	return len(f.Grid.Bands)
}

// MaxScroll is the largest useful horizontal scroll offset.
func MaxScroll(gridWidth float64, visibleCells int) int {
	return max(int(math.Ceil(gridWidth))-visibleCells, 0)
}

// col maps a layout x to a canvas column.
func (f ChartFrame) col(x float64) int {
	return f.SidebarWidth + int(math.Floor(x)) - f.ScrollX
}

// RenderChart paints the header bands and the chart body.
func RenderChart(f ChartFrame) string {
	header := f.HeaderLines()
	body := int(math.Ceil(f.Layout.Height))
	c := newCanvas(f.Width, header+body)
	if f.Width <= f.SidebarWidth {
		return c.String()
	}

	paintBands(c, f)
	paintGridlines(c, f, header, body)
	paintSidebar(c, f, header)
	paintItems(c, f, header)
	return c.String()
}

func paintBands(c *canvas, f ChartFrame) {
	for y, band := range f.Grid.Bands {
		st := &StyleFg
		if band.Granularity == domain.GranularityYear {
			st = &StyleHeader
		}
		c.text(0, y, PadRight(string(band.Granularity), f.SidebarWidth-1), -1, &StyleDim)
		c.set(f.SidebarWidth-1, y, '│', &StyleGrid)
		for _, seg := range band.Segments {
			x := f.col(seg.X)
			c.set(max(x, f.SidebarWidth), y, '▏', &StyleGrid)
			if !seg.ShowLabel {
				continue
			}
			limit := int(math.Floor(seg.Width)) - 1
			from := x + 1
			if from < f.SidebarWidth {
				// segment starts off-screen; keep its label visible at the edge
				limit -= f.SidebarWidth - from
				from = f.SidebarWidth
			}
			c.text(from, y, seg.Label, limit, st)
		}
	}
}

// gridlineVisible hides gridlines that would be closer than three cells.
func gridlineVisible(kind domain.Granularity, ppd float64) bool {
	switch kind {
	case domain.GranularityDay:
		return ppd >= 3
	case domain.GranularityWeek:
		return ppd*7 >= 3
	case domain.GranularityMonth:
		return ppd*28 >= 3
	default:
		return true
	}
}

func paintGridlines(c *canvas, f ChartFrame, top, lines int) {
	for _, gl := range f.Grid.Lines {
		if !gridlineVisible(gl.Kind, f.Grid.PixelsPerDay) {
			continue
		}
		x := f.col(gl.X)
		if x < f.SidebarWidth {
			continue
		}
		for y := top; y < top+lines; y++ {
			c.set(x, y, '┊', &StyleGrid)
		}
	}
	if f.Grid.TodayVisible() {
		x := f.col(f.Grid.Today.X)
		if x >= f.SidebarWidth {
			for y := top; y < top+lines; y++ {
				c.set(x, y, '│', &StyleYellow)
			}
		}
	}
}

func paintSidebar(c *canvas, f ChartFrame, top int) {
	for _, row := range f.Layout.Rows {
		y := top + int(row.Y)
		label := PadRight(row.Label, f.SidebarWidth-3)
		if row.RowID == f.SelectedRow {
			c.text(0, y, "▶ "+label, -1, &StyleHeader)
		} else {
			c.text(2, y, label, -1, &StyleFg)
		}
		for dy := 0; dy < int(row.Height); dy++ {
			c.set(f.SidebarWidth-1, y+dy, '│', &StyleGrid)
		}
	}
}

func paintItems(c *canvas, f ChartFrame, top int) {
	byID := make(map[string]domain.TimelineItem, len(f.Items))
	for _, it := range f.Items {
		byID[it.ID] = it
	}
	styles := map[string]*lipgloss.Style{}
	styleFor := func(p geometry.Placed) *lipgloss.Style {
		if p.ItemID == f.ActiveItem {
			return &StyleYellowBold
		}
		key := p.Color
		if p.Critical {
			key = "!critical"
		}
		if st, ok := styles[key]; ok {
			return st
		}
		st := ItemStyle(p.Color, p.Critical)
		styles[key] = &st
		return &st
	}

	for _, p := range f.Layout.Items {
		band, ok := f.Layout.Row(p.RowID)
		if !ok {
			continue
		}
		y := top + int(band.Y)
		st := styleFor(p)
		x := f.col(p.X)
		item := byID[p.ItemID]

		var label string
		if p.Kind == geometry.ShapeBar {
			end := max(f.col(math.Ceil(p.EndX())), x+1)
			glyph := '█'
			if p.ItemID == f.ActiveItem {
				glyph = '▓'
			}
			c.hline(max(x, f.SidebarWidth), end, y, glyph, st)
			label = item.Label + " " + ShortSpan(item.Date, item.EndDate)
		} else {
			glyph := '◆'
			if p.Critical {
				glyph = '★'
			}
			if x >= f.SidebarWidth {
				c.set(x, y, glyph, st)
			}
			label = item.Label + " " + dategrid.FormatShort(item.Date)
		}

		if band.Height < 2 {
			continue
		}
		from := max(x, f.SidebarWidth)
		limit := -1
		if x < f.SidebarWidth {
			limit = max(lipgloss.Width(label)-(f.SidebarWidth-x), 0)
			label = tailCells(label, limit)
		}
		c.text(from, y+1, label, limit, &StyleDim)
	}
}

// tailCells returns the last n cells of s.
func tailCells(s string, n int) string {
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > n {
		r = r[1:]
	}
	return string(r)
}
