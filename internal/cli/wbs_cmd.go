package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/llm"
	"github.com/alexanderramin/gantt/internal/store"
	"github.com/alexanderramin/gantt/internal/wbs"
	"github.com/spf13/cobra"
)

func newWBSCmd(app *App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wbs",
		Short: "Show or generate a row's work breakdown",
	}
	cmd.AddCommand(newWBSShowCmd(app, opts), newWBSGenerateCmd(app, opts))
	return cmd
}

func newWBSShowCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ROW",
		Short: "Print a row's breakdown tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(app, opts)
			if err != nil {
				return err
			}
			row, err := findRow(ws.Data, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWBS(row, wbs.AutoExpand(wbs.NewExpandedSet(), row.WBS)))
			return nil
		},
	}
}

func newWBSGenerateCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate ROW",
		Short: "Draft a row's breakdown with the LLM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Breakdown == nil {
				return llm.ErrDisabled
			}
			ws, err := loadWorkspace(app, opts)
			if err != nil {
				return err
			}
			row, err := findRow(ws.Data, args[0])
			if err != nil {
				return err
			}

			stop := startSpinner(app, cmd, fmt.Sprintf("Generating breakdown for %s...", row.Label))
			items, genErr := app.Breakdown.GenerateBreakdown(cmd.Context(), row.Label, ws.Data.ItemsForRow(row.ID))
			stop()

			st := ws.newStore(app)
			if !st.CompleteBreakdown(store.BreakdownResult{RowID: row.ID, Items: items, Err: genErr}) {
				if errors.Is(st.LastError(), store.ErrEmptyBreakdown) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("The model returned no tasks; the row is unchanged."))
				}
				return st.LastError()
			}

			updated, _ := findRow(st.Snapshot(), row.ID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWBS(updated, wbs.AutoExpand(wbs.NewExpandedSet(), updated.WBS)))
			return nil
		},
	}
}

// startSpinner animates on stderr when it is a terminal and returns the stop func.
func startSpinner(app *App, cmd *cobra.Command, message string) func() {
	if app.IsInteractive == nil || !app.IsInteractive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}
