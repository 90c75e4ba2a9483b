package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/intelligence"
	tea "github.com/charmbracelet/bubbletea"
)

// Completions of background work. They are applied to the store on the
// update loop, in arrival order.
type (
	breakdownDoneMsg struct {
		rowID string
		label string
		items []domain.WBSItem
		err   error
	}
	importDoneMsg struct {
		path string
		data *domain.TimelineData
		err  error
	}
	statusMsg struct {
		text string
		err  error
	}
)

// breakdownCmd generates a row's breakdown off the update loop.
func breakdownCmd(gen intelligence.BreakdownGenerator, row domain.TimelineRow, items []domain.TimelineItem) tea.Cmd {
	return func() tea.Msg {
		out, err := gen.GenerateBreakdown(context.Background(), row.Label, items)
		return breakdownDoneMsg{rowID: row.ID, label: row.Label, items: out, err: err}
	}
}

// importCmd reads and parses a schedule image off the update loop.
func importCmd(parser intelligence.ImageParser, path string) tea.Cmd {
	return func() tea.Msg {
		image, err := os.ReadFile(path)
		if err != nil {
			return importDoneMsg{path: path, err: fmt.Errorf("reading image: %w", err)}
		}
		data, err := parser.ParseImage(context.Background(), image)
		return importDoneMsg{path: path, data: data, err: err}
	}
}
