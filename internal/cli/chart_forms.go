package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/wbs"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// formPanel wraps a huh.Form shown over the chart. When the form completes
// the done callback returns the command that carries its result back to the
// update loop.
type formPanel struct {
	title string
	form  *huh.Form
	done  func() tea.Cmd
}

func newFormPanel(title string, form *huh.Form, done func() tea.Cmd) *formPanel {
	return &formPanel{title: title, form: form, done: done}
}

// update forwards msg to the form. finished is true once the form completed
// or was aborted.
func (p *formPanel) update(msg tea.Msg) (finished bool, cmd tea.Cmd) {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	switch p.form.State {
	case huh.StateCompleted:
		var doneCmd tea.Cmd
		if p.done != nil {
			doneCmd = p.done()
		}
		return true, tea.Batch(cmd, doneCmd)
	case huh.StateAborted:
		return true, cmd
	}
	return false, cmd
}

func (p *formPanel) view() string {
	return p.form.View()
}

// Results sent back by the forms. The update loop applies them to the store.
type (
	wbsEditMsg struct {
		rowID  string
		nodeID string
		patch  wbs.Patch
	}
	wbsDeleteMsg struct {
		rowID  string
		nodeID string
	}
	importPathMsg struct {
		path string
	}
)

// wbsEditFields holds form-bound values for the task edit form.
type wbsEditFields struct {
	name   string
	start  string
	end    string
	owner  string
	status domain.WBSStatus
}

// patch returns only the fields that differ from the node.
func (f *wbsEditFields) patch(node domain.WBSItem) (wbs.Patch, error) {
	var p wbs.Patch
	start, err := dategrid.ParseDate(f.start)
	if err != nil {
		return p, err
	}
	end, err := dategrid.ParseDate(f.end)
	if err != nil {
		return p, err
	}
	if end.Before(start) {
		return p, fmt.Errorf("end %s is before start %s", f.end, f.start)
	}
	if name := strings.TrimSpace(f.name); name != node.TaskName {
		p.TaskName = &name
	}
	if !start.Equal(node.StartDate) {
		p.StartDate = &start
	}
	if !end.Equal(node.EndDate) {
		p.EndDate = &end
	}
	if owner := strings.TrimSpace(f.owner); owner != node.Owner {
		p.Owner = &owner
	}
	if f.status != node.Status {
		status := f.status
		p.Status = &status
	}
	return p, nil
}

// newEditTaskForm edits the name, dates, owner and status of one task.
func newEditTaskForm(rowID string, node domain.WBSItem) *formPanel {
	f := &wbsEditFields{
		name:   node.TaskName,
		start:  dategrid.FormatDate(node.StartDate),
		end:    dategrid.FormatDate(node.EndDate),
		owner:  node.Owner,
		status: node.Status,
	}
	if f.status == "" {
		f.status = domain.WBSPending
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(&f.name).Validate(validateRequired),
			huh.NewInput().Title("Start (YYYY-MM-DD)").Value(&f.start).Validate(validateDate),
			huh.NewInput().Title("End (YYYY-MM-DD)").Value(&f.end).Validate(validateDate),
			huh.NewInput().Title("Owner (optional)").Value(&f.owner),
			huh.NewSelect[domain.WBSStatus]().Title("Status").Options(
				huh.NewOption("Pending", domain.WBSPending),
				huh.NewOption("In Progress", domain.WBSInProgress),
				huh.NewOption("Done", domain.WBSDone),
			).Value(&f.status),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			p, err := f.patch(node)
			if err != nil {
				return statusMsg{err: err}
			}
			return wbsEditMsg{rowID: rowID, nodeID: node.ID, patch: p}
		}
	}
	return newFormPanel("Edit task", form, done)
}

// newDeleteTaskForm asks before removing a task and its subtasks.
func newDeleteTaskForm(rowID string, node domain.WBSItem) *formPanel {
	confirmed := false
	title := fmt.Sprintf("Delete %q?", node.TaskName)
	if node.HasSubTasks() {
		title = fmt.Sprintf("Delete %q and its %d subtask(s)?", node.TaskName, wbs.Count(node.SubTasks))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Delete").Negative("Keep").Value(&confirmed),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		if !confirmed {
			return nil
		}
		return func() tea.Msg { return wbsDeleteMsg{rowID: rowID, nodeID: node.ID} }
	}
	return newFormPanel("Delete task", form, done)
}

// newImportForm prompts for a schedule image path.
func newImportForm() *formPanel {
	var path string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schedule image").
				Description("PNG or JPEG of a project schedule; replaces the current plan").
				Placeholder("~/plan.png").
				Value(&path).
				Validate(validateImagePath),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg { return importPathMsg{path: expandHome(path)} }
	}
	return newFormPanel("Import image", form, done)
}

func validateImagePath(s string) error {
	if s == "" {
		return fmt.Errorf("enter a file path")
	}
	info, err := os.Stat(expandHome(s))
	if err != nil {
		return fmt.Errorf("file not found")
	}
	if info.IsDir() {
		return fmt.Errorf("not a file")
	}
	return nil
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return home + p[1:]
}
