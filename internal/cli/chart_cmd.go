package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/geometry"
	"github.com/spf13/cobra"
)

func newGridCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Print the header bands and gridlines of the plan's date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(app, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGrid(ws.grid()))
			return nil
		},
	}
}

func newLayoutCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print item geometry and the items that could not be placed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(app, opts)
			if err != nil {
				return err
			}
			l := geometry.Layout(ws.Data, ws.viewConfig())
			for _, p := range l.Problems {
				app.logger().Warn("item_skipped", "item", p.ItemID, "err", p.Err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLayout(l, ws.Data))
			return nil
		},
	}
}
