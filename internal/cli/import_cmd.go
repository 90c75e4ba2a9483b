package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/llm"
	"github.com/alexanderramin/gantt/internal/store"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import IMAGE",
		Short: "Read a schedule image with the LLM and print the resulting plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Parser == nil {
				return llm.ErrDisabled
			}
			ws, err := loadWorkspace(app, opts)
			if err != nil {
				return err
			}
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}

			stop := startSpinner(app, cmd, "Reading schedule image...")
			data, parseErr := app.Parser.ParseImage(cmd.Context(), image)
			stop()

			st := ws.newStore(app)
			if !st.CompleteImport(store.ImportResult{Data: data, Err: parseErr}) {
				return st.LastError()
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanSummary(st.Snapshot()))
			return nil
		},
	}
}
