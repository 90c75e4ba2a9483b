package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/drag"
	"github.com/alexanderramin/gantt/internal/geometry"
	"github.com/alexanderramin/gantt/internal/llm"
	"github.com/alexanderramin/gantt/internal/store"
	"github.com/alexanderramin/gantt/internal/timegrid"
	"github.com/alexanderramin/gantt/internal/wbs"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	sidebarWidth = 18
	rowLines     = 2 // bar line and label line
	titleLines   = 1
	scrollStep   = 8

	// until the first WindowSizeMsg
	defaultWidth  = 100
	defaultHeight = 30
)

// chartModel is the bubbletea model of the interactive chart. The update
// loop is the only goroutine that touches the store; LLM work runs in
// commands whose results come back as messages.
type chartModel struct {
	app    *App
	store  *store.Store
	view   config.View
	vc     domain.ViewConfig
	today  time.Time
	logger *slog.Logger

	engine  *drag.Engine
	preview *drag.PreviewCommitter // nil in live commit mode

	width, height int
	scrollX       int
	selected      int
	openRow       string // row whose breakdown is shown; one at a time
	expanded      wbs.ExpandedSet
	cursor        int

	generating map[string]bool
	imports    int
	spinner    spinner.Model

	panel  *formPanel
	status string

	keys     keyMap
	help     help.Model
	quitting bool
}

func newChartModel(app *App, ws *workspace) *chartModel {
	logger := app.tuiLogger()
	st := store.New(ws.Data)
	st.OnChange(store.NewLogObserver(logger))

	committer := drag.NewCommitter(st, ws.View.CommitMode())
	preview, _ := committer.(*drag.PreviewCommitter)

	return &chartModel{
		app:        app,
		store:      st,
		view:       ws.View,
		vc:         ws.viewConfig(),
		today:      ws.Today,
		logger:     logger,
		engine:     drag.NewEngine(st, committer),
		preview:    preview,
		expanded:   wbs.NewExpandedSet(),
		generating: make(map[string]bool),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      defaultWidth,
		height:     defaultHeight,
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m *chartModel) Init() tea.Cmd {
	return nil
}

func (m *chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case breakdownDoneMsg:
		m.completeBreakdown(msg)
		return m, nil

	case importDoneMsg:
		m.completeImport(msg)
		return m, nil

	case importPathMsg:
		return m, m.startImport(msg.path)

	case wbsEditMsg:
		if msg.patch.IsZero() {
			m.status = "No changes."
			return m, nil
		}
		if err := m.store.EditWBSNode(msg.rowID, msg.nodeID, msg.patch); err != nil {
			m.setError(err)
			return m, nil
		}
		m.status = formatter.StyleGreen.Render("✔") + " Task updated."
		return m, nil

	case wbsDeleteMsg:
		if err := m.store.DeleteWBSNode(msg.rowID, msg.nodeID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.clampCursor()
		m.status = formatter.StyleGreen.Render("✔") + " Task deleted."
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.status = msg.text
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.panel != nil {
		return m.updatePanel(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *chartModel) updatePanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEsc:
			m.panel = nil
			m.status = formatter.Dim("Cancelled.")
			return m, nil
		}
	}
	finished, cmd := m.panel.update(msg)
	if finished {
		m.panel = nil
	}
	return m, cmd
}

func (m *chartModel) openPanel(p *formPanel) tea.Cmd {
	m.panel = p
	return p.form.Init()
}

// ── keys ─────────────────────────────────────────────────────────────────────

func (m *chartModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Cancel):
		m.escape()

	case key.Matches(msg, k.ZoomIn):
		m.zoom(true)
	case key.Matches(msg, k.ZoomOut):
		m.zoom(false)

	case key.Matches(msg, k.Years):
		m.toggleBand(domain.GranularityYear)
	case key.Matches(msg, k.Months):
		m.toggleBand(domain.GranularityMonth)
	case key.Matches(msg, k.Weeks):
		m.toggleBand(domain.GranularityWeek)
	case key.Matches(msg, k.Days):
		m.toggleBand(domain.GranularityDay)

	case key.Matches(msg, k.Left):
		m.scrollBy(-scrollStep)
	case key.Matches(msg, k.Right):
		m.scrollBy(scrollStep)

	case key.Matches(msg, k.NextRow):
		m.selectRow(m.selected + 1)
	case key.Matches(msg, k.PrevRow):
		m.selectRow(m.selected - 1)
	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)

	case key.Matches(msg, k.ToggleWBS):
		m.toggleWBS()
	case key.Matches(msg, k.ToggleNode):
		if r, ok := m.cursorRow(); ok && r.HasChildren {
			m.expanded = m.expanded.Toggle(r.Item.ID)
		}

	case key.Matches(msg, k.Generate):
		return m, m.startBreakdown()

	case key.Matches(msg, k.Edit):
		if r, ok := m.cursorRow(); ok {
			return m, m.openPanel(newEditTaskForm(m.openRow, r.Item))
		}
		m.status = formatter.Dim("Open a breakdown with enter and pick a task first.")
	case key.Matches(msg, k.Delete):
		if r, ok := m.cursorRow(); ok {
			return m, m.openPanel(newDeleteTaskForm(m.openRow, r.Item))
		}
		m.status = formatter.Dim("Open a breakdown with enter and pick a task first.")

	case key.Matches(msg, k.Import):
		if m.app.Parser == nil {
			m.setError(llm.ErrDisabled)
			return m, nil
		}
		return m, m.openPanel(newImportForm())

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// escape cancels the innermost thing in progress: a drag, then the error
// banner, then the breakdown panel.
func (m *chartModel) escape() {
	switch {
	case m.engine.Dragging():
		m.cancelDrag()
	case m.store.LastError() != nil:
		m.store.ClearError()
		m.status = ""
	case m.openRow != "":
		m.openRow = ""
	default:
		m.status = ""
	}
}

func (m *chartModel) zoom(in bool) {
	if m.engine.Dragging() {
		return
	}
	data := m.store.Snapshot()
	left := dategrid.XToDate(float64(m.scrollX), data.StartDate, m.vc.PixelsPerDay)
	m.vc = m.view.Zoomed(m.vc, in)
	m.scrollX = int(math.Round(dategrid.DateToX(left, data.StartDate, m.vc.PixelsPerDay)))
	m.clampScroll()
	m.status = formatter.Dim(fmt.Sprintf("Zoom %s cells/day", formatter.FormatPx(m.vc.PixelsPerDay)))
}

func (m *chartModel) toggleBand(g domain.Granularity) {
	m.vc.Granularities = m.vc.Granularities.Toggle(g)
}

func (m *chartModel) scrollBy(n int) {
	m.scrollX += n
	m.clampScroll()
}

func (m *chartModel) clampScroll() {
	data := m.store.Snapshot()
	width := float64(dategrid.DaysBetween(data.StartDate, data.EndDate)) * m.vc.PixelsPerDay
	m.scrollX = min(max(m.scrollX, 0), formatter.MaxScroll(width, m.width-sidebarWidth))
}

func (m *chartModel) selectRow(i int) {
	n := len(m.store.Snapshot().Rows)
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = ((i % n) + n) % n
}

func (m *chartModel) selectedRow() (domain.TimelineRow, bool) {
	rows := m.store.Snapshot().Rows
	if m.selected < 0 || m.selected >= len(rows) {
		return domain.TimelineRow{}, false
	}
	return rows[m.selected], true
}

func (m *chartModel) selectRowID(id string) {
	for i, r := range m.store.Snapshot().Rows {
		if r.ID == id {
			m.selected = i
			return
		}
	}
}

// toggleWBS opens the selected row's breakdown, closing any other.
func (m *chartModel) toggleWBS() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}
	if m.openRow == row.ID {
		m.openRow = ""
		return
	}
	m.openRow = row.ID
	m.cursor = 0
}

func (m *chartModel) visibleTasks() []wbs.VisibleRow {
	if m.openRow == "" {
		return nil
	}
	forest, _ := m.store.RowWBS(m.openRow)
	return wbs.Visible(forest, m.expanded)
}

func (m *chartModel) cursorRow() (wbs.VisibleRow, bool) {
	rows := m.visibleTasks()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return wbs.VisibleRow{}, false
	}
	return rows[m.cursor], true
}

// moveCursor walks the breakdown when it is open, the rows otherwise.
func (m *chartModel) moveCursor(d int) {
	if m.openRow == "" {
		m.selectRow(m.selected + d)
		return
	}
	m.cursor += d
	m.clampCursor()
}

func (m *chartModel) clampCursor() {
	n := len(m.visibleTasks())
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))
}

// ── background work ──────────────────────────────────────────────────────────

func (m *chartModel) busy() bool {
	return len(m.generating) > 0 || m.imports > 0
}

func (m *chartModel) startBreakdown() tea.Cmd {
	if m.app.Breakdown == nil {
		m.setError(llm.ErrDisabled)
		return nil
	}
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	m.openRow = row.ID
	if m.generating[row.ID] {
		m.status = formatter.Dim("Already generating a breakdown for " + row.Label + ".")
		return nil
	}
	m.generating[row.ID] = true
	items := m.store.Snapshot().ItemsForRow(row.ID)
	return tea.Batch(m.spinner.Tick, breakdownCmd(m.app.Breakdown, row, items))
}

// completeBreakdown applies a result whether or not its row is still open.
func (m *chartModel) completeBreakdown(msg breakdownDoneMsg) {
	delete(m.generating, msg.rowID)
	applied := m.store.CompleteBreakdown(store.BreakdownResult{RowID: msg.rowID, Items: msg.items, Err: msg.err})
	if !applied {
		switch err := m.store.LastError(); {
		case errors.Is(err, store.ErrEmptyBreakdown):
			m.status = formatter.Dim("The model returned no tasks for " + msg.label + ".")
		case err != nil:
			m.setError(err)
		}
		return
	}
	forest, _ := m.store.RowWBS(msg.rowID)
	m.expanded = wbs.AutoExpand(m.expanded, forest)
	m.clampCursor()
	m.status = fmt.Sprintf("%s Drafted %d task(s) for %s.", formatter.StyleGreen.Render("✔"), wbs.Count(forest), msg.label)
}

func (m *chartModel) startImport(path string) tea.Cmd {
	if m.app.Parser == nil {
		m.setError(llm.ErrDisabled)
		return nil
	}
	m.imports++
	return tea.Batch(m.spinner.Tick, importCmd(m.app.Parser, path))
}

// completeImport swaps in the imported plan; the later of two racing
// imports wins.
func (m *chartModel) completeImport(msg importDoneMsg) {
	m.imports = max(m.imports-1, 0)
	if m.engine.Dragging() {
		m.cancelDrag()
	}
	if !m.store.CompleteImport(store.ImportResult{Data: msg.data, Err: msg.err}) {
		m.setError(m.store.LastError())
		return
	}
	m.selected, m.scrollX, m.cursor = 0, 0, 0
	m.openRow = ""
	m.expanded = wbs.NewExpandedSet()
	m.clampScroll()
	m.status = fmt.Sprintf("%s Imported %q.", formatter.StyleGreen.Render("✔"), m.store.Title())
}

func (m *chartModel) setError(err error) {
	m.logger.Warn("chart_error", "err", err)
	m.status = formatter.StyleRed.Render("✖ " + err.Error())
}

// ── derived geometry ─────────────────────────────────────────────────────────

// snapshot returns the plan as drawn, including an uncommitted drag preview.
func (m *chartModel) snapshot() domain.TimelineData {
	data := m.store.Snapshot()
	if m.preview == nil {
		return data
	}
	if c, ok := m.preview.Pending(); ok {
		if _, idx, found := data.ItemByID(c.ItemID); found {
			data.Items[idx].Date = c.Date
			if c.EndDate != nil {
				data.Items[idx].EndDate = domain.DatePtr(*c.EndDate)
			}
		}
	}
	return data
}

func (m *chartModel) frame() (formatter.ChartFrame, domain.TimelineData) {
	data := m.snapshot()
	f := formatter.ChartFrame{
		Grid:         timegrid.BuildWith(data.StartDate, data.EndDate, m.vc, m.today, m.view.LabelWidths()),
		Layout:       geometry.LayoutWith(data, m.vc.PixelsPerDay, func(domain.TimelineRow) float64 { return rowLines }),
		Items:        data.Items,
		Width:        m.width,
		SidebarWidth: sidebarWidth,
		ScrollX:      m.scrollX,
		ActiveItem:   m.engine.Session().TargetItemID,
	}
	if m.selected < len(data.Rows) {
		f.SelectedRow = data.Rows[m.selected].ID
	}
	return f, data
}

// bodyTop is the screen line of the first chart row.
func bodyTop(f formatter.ChartFrame) int {
	return titleLines + f.HeaderLines()
}
