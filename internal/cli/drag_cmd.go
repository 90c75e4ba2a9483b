package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/drag"
	"github.com/alexanderramin/gantt/internal/geometry"
	"github.com/spf13/cobra"
)

func newDragCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		dx   float64
		mode string
	)

	cmd := &cobra.Command{
		Use:   "drag ITEM",
		Short: "Replay a press, move and release on an item and print its new dates",
		Long: `Replay a pointer gesture through the drag engine. ITEM is an item id or
label; --dx is the pointer displacement in cells (pixels) at the current zoom.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := drag.ParseMode(mode)
			if err != nil {
				return err
			}
			ws, err := loadWorkspace(app, opts)
			if err != nil {
				return err
			}
			before, err := findItem(ws.Data, args[0])
			if err != nil {
				return err
			}

			vc := ws.viewConfig()
			shape, err := geometry.ForItem(before, ws.Data.StartDate, vc.PixelsPerDay)
			if err != nil {
				return err
			}
			x := shape.X
			if m == drag.ModeResizeEnd {
				x = shape.EndX()
			}

			st := ws.newStore(app)
			engine := drag.NewEngine(st, drag.NewCommitter(st, ws.View.CommitMode()))
			if err := engine.Press(before, x, m); err != nil {
				return err
			}
			if _, err := engine.Move(x+dx, vc.PixelsPerDay); err != nil {
				return err
			}
			if _, err := engine.Release(); err != nil {
				return err
			}

			after, _ := st.ItemByID(before.ID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDragResult(before, after))
			return nil
		},
	}

	cmd.Flags().Float64Var(&dx, "dx", 0, "pointer displacement in cells")
	cmd.Flags().StringVar(&mode, "mode", string(drag.ModeMove), "move|resize-start|resize-end")
	return cmd
}
