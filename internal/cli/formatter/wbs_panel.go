package formatter

import (
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/wbs"
	"github.com/charmbracelet/lipgloss"
)

// WBSPanel is the breakdown editor drawn under the chart, one task per line,
// with its bar aligned to the chart columns.
type WBSPanel struct {
	Frame        ChartFrame
	Start        time.Time
	PixelsPerDay float64
	Style        wbs.BarStyle
	Rows         []wbs.VisibleRow
	Cursor       int
}

var (
	styleParentBar = lipgloss.NewStyle().Foreground(ColorPurple)
	styleCursor    = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).Reverse(true)
)

// RenderWBSPanel paints the visible tasks of one row.
func RenderWBSPanel(p WBSPanel) string {
	f := p.Frame
	c := newCanvas(f.Width, len(p.Rows))
	if f.Width <= f.SidebarWidth {
		return c.String()
	}

	for y, r := range p.Rows {
		paintTaskName(c, f, y, r, y == p.Cursor)

		bar := wbs.BarFor(r.Item, p.Start, p.PixelsPerDay, p.Style)
		st := taskStyle(r)
		glyph := '█'
		if r.HasChildren {
			glyph = '▆'
		}
		if bar.Invalid {
			st, glyph = &StyleRed, '░'
		}
		x := f.col(bar.X)
		end := max(f.col(math.Ceil(bar.X+bar.Width)), x+1)
		c.hline(max(x, f.SidebarWidth), end, y, glyph, st)

		name := r.Item.TaskName
		if bar.LabelOutside {
			c.text(max(end+1, f.SidebarWidth), y, name, -1, &StyleDim)
			continue
		}
		inside := st.Reverse(true)
		from := max(x+1, f.SidebarWidth)
		c.text(from, y, name, end-from-1, &inside)
	}
	return c.String()
}

func paintTaskName(c *canvas, f ChartFrame, y int, r wbs.VisibleRow, selected bool) {
	marker := "· "
	if r.HasChildren {
		marker = "▸ "
		if r.Expanded {
			marker = "▾ "
		}
	}
	label := strings.Repeat(" ", r.Level) + marker + r.Item.TaskName
	st := &StyleFg
	switch {
	case selected:
		st = &styleCursor
	case r.Item.Status == domain.WBSDone:
		st = &StyleDim
	}
	c.text(0, y, PadRight(label, f.SidebarWidth-1), -1, st)
	c.set(f.SidebarWidth-1, y, '│', &StyleGrid)
}

func taskStyle(r wbs.VisibleRow) *lipgloss.Style {
	if r.HasChildren {
		return &styleParentBar
	}
	switch r.Item.Status {
	case domain.WBSDone:
		return &StyleGreen
	case domain.WBSInProgress:
		return &StyleYellow
	default:
		return &StyleBlue
	}
}
