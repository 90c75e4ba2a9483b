package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/drag"
	"github.com/alexanderramin/gantt/internal/wbs"
	tea "github.com/charmbracelet/bubbletea"
)

// ── mouse ────────────────────────────────────────────────────────────────────

// chartX maps a screen column to a layout x at the centre of the cell.
func (m *chartModel) chartX(col int) float64 {
	return float64(col-sidebarWidth+m.scrollX) + 0.5
}

func (m *chartModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-scrollStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(scrollStep)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press(msg.X, msg.Y)

	case msg.Action == tea.MouseActionMotion && m.engine.Dragging():
		out, err := m.engine.Move(m.chartX(msg.X), m.vc.PixelsPerDay)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if out.Cancelled {
			m.status = formatter.Dim("The dragged item is gone.")
		}

	case msg.Action == tea.MouseActionRelease && m.engine.Dragging():
		if _, err := m.engine.Release(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.status = ""
	}
	return m, nil
}

// press selects the row under the pointer and starts a drag when an item is
// hit. Clicks in the sidebar only select.
func (m *chartModel) press(col, line int) {
	f, _ := m.frame()
	if line >= titleLines && line < bodyTop(f) {
		m.pressHeader(f, col, line)
		return
	}
	y := float64(line-bodyTop(f)) + 0.5
	row, ok := f.Layout.RowAt(y)
	if !ok {
		return
	}
	m.selectRowID(row.RowID)
	if col < sidebarWidth {
		return
	}

	hit, ok := f.Layout.HitTest(m.chartX(col), y, m.view.Drag.EdgeTolerance)
	if !ok {
		return
	}
	item, ok := m.store.ItemByID(hit.ItemID)
	if !ok {
		return
	}
	if err := m.engine.Press(item, m.chartX(col), drag.ModeForHandle(hit.Handle)); err != nil {
		m.setError(err)
		return
	}
	m.status = formatter.Dim(fmt.Sprintf("Dragging %s (%s). esc cancels.", item.Label, drag.ModeForHandle(hit.Handle)))
}

// pressHeader reports the header unit under the pointer.
func (m *chartModel) pressHeader(f formatter.ChartFrame, col, line int) {
	if col < sidebarWidth {
		return
	}
	band := f.Grid.Bands[line-titleLines]
	seg, ok := f.Grid.SegmentAt(band.Granularity, m.chartX(col))
	if !ok {
		return
	}
	last := dategrid.AddDays(seg.Start, seg.Days-1)
	m.status = formatter.Dim(fmt.Sprintf("%s %s: %s..%s (%d days)", band.Granularity, seg.Label,
		dategrid.FormatDate(seg.Start), dategrid.FormatDate(last), seg.Days))
}

func (m *chartModel) cancelDrag() {
	if _, err := m.engine.Cancel(); err != nil {
		m.setError(err)
		return
	}
	m.status = formatter.Dim("Drag cancelled.")
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m *chartModel) View() string {
	if m.quitting {
		return ""
	}

	f, data := m.frame()
	var b strings.Builder

	b.WriteString(formatter.StyleHeader.Render(data.Title))
	b.WriteString(formatter.Dim(fmt.Sprintf("  %s cells/day · %s", formatter.FormatPx(m.vc.PixelsPerDay), m.vc.Granularities)))
	b.WriteString("\n")
	b.WriteString(formatter.RenderChart(f))
	b.WriteString("\n")

	if m.openRow != "" {
		b.WriteString(m.viewBreakdown(f))
	}
	if m.panel != nil {
		b.WriteString(formatter.RenderBox(m.panel.title, m.panel.view()))
		b.WriteString("\n")
	}

	status := m.status
	if m.busy() {
		status = strings.TrimSpace(m.spinner.View() + " " + m.busyText() + "  " + status)
	}
	if status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *chartModel) viewBreakdown(f formatter.ChartFrame) string {
	data := m.store.Snapshot()
	row, _, ok := data.RowByID(m.openRow)
	if !ok {
		return ""
	}

	done, total := formatter.WBSProgress(row.WBS)
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Breakdown: " + row.Label))
	if total > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("  %d/%d done ", done, total)))
		b.WriteString(formatter.RenderProgress(float64(done)/float64(total), 12))
	}
	b.WriteString("\n")

	rows := wbs.Visible(row.WBS, m.expanded)
	switch {
	case len(rows) > 0:
		b.WriteString(formatter.RenderWBSPanel(formatter.WBSPanel{
			Frame:        f,
			Start:        data.StartDate,
			PixelsPerDay: m.vc.PixelsPerDay,
			Style:        m.view.BarStyle(),
			Rows:         rows,
			Cursor:       m.cursor,
		}))
		b.WriteString("\n")
	case m.generating[row.ID]:
	default:
		b.WriteString(formatter.Dim("No tasks yet. Press g to draft a breakdown."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *chartModel) busyText() string {
	var parts []string
	if n := len(m.generating); n > 0 {
		parts = append(parts, fmt.Sprintf("drafting %d breakdown(s)", n))
	}
	if m.imports > 0 {
		parts = append(parts, "importing")
	}
	return strings.Join(parts, ", ") + "…"
}
