package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/spf13/cobra"
)

var errInvalidFile = errors.New("validation failed")

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a timeline JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			schema, err := importer.LoadSchema(path)
			if err != nil {
				return err
			}
			errs := importer.ValidateSchema(schema)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidation(path, errs))
			if len(errs) > 0 {
				app.logger().Debug("validate", "path", path, "problems", len(errs))
				return fmt.Errorf("%s: %w", path, errInvalidFile)
			}
			return nil
		},
	}
}
