package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("the chart needs an interactive terminal; try 'gantt layout' or 'gantt grid'")

func newViewCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive chart",
		Long: `Open the interactive chart.

Drag bars with the mouse to move them, or grab an edge to resize.
Press enter on a row to open its breakdown and g to draft one with the LLM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return errNotInteractive
			}
			ws, err := loadWorkspace(app, opts)
			if err != nil {
				return err
			}
			run := app.RunProgram
			if run == nil {
				run = runProgram
			}
			return run(newChartModel(app, ws))
		},
	}
}

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
