package cli

import (
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/store"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		label, date, end, color string
		critical                bool
	)

	cmd := &cobra.Command{
		Use:   "edit ITEM",
		Short: "Apply an explicit edit to an item and print the result",
		Long: `Edit an item's label, dates, critical flag or color. ITEM is an item id or
label. Only the flags given are changed; an edit that puts the end before
the start is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edit store.ItemEdit
			flags := cmd.Flags()
			if flags.Changed("label") {
				edit.Label = &label
			}
			if flags.Changed("date") {
				d, err := dategrid.ParseDate(date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				edit.Date = &d
			}
			if flags.Changed("end") {
				d, err := dategrid.ParseDate(end)
				if err != nil {
					return fmt.Errorf("--end: %w", err)
				}
				edit.EndDate = &d
			}
			if flags.Changed("critical") {
				edit.IsCritical = &critical
			}
			if flags.Changed("color") {
				edit.Color = &color
			}

			ws, err := loadWorkspace(app, opts)
			if err != nil {
				return err
			}
			before, err := findItem(ws.Data, args[0])
			if err != nil {
				return err
			}
			st := ws.newStore(app)
			if err := st.UpdateItem(before.ID, edit); err != nil {
				return err
			}
			after, _ := st.ItemByID(before.ID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemEdit(before, after))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&label, "label", "", "new label")
	f.StringVar(&date, "date", "", "new start (or milestone) date, YYYY-MM-DD")
	f.StringVar(&end, "end", "", "new end date of a range, YYYY-MM-DD")
	f.BoolVar(&critical, "critical", false, "mark the item critical")
	f.StringVar(&color, "color", "", "bar color")
	return cmd
}
