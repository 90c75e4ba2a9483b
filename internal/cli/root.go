package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/intelligence"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the collaborators shared by every command.
type App struct {
	Logger *slog.Logger
	// TUILogger receives logs while the chart owns the terminal.
	TUILogger *slog.Logger

	// Parser and Breakdown are nil when the LLM is disabled.
	Parser    intelligence.ImageParser
	Breakdown intelligence.BreakdownGenerator

	IsInteractive func() bool
	Now           func() time.Time
	// RunProgram runs the interactive chart until it quits.
	RunProgram func(tea.Model) error
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return config.NewLogger(nil, slog.LevelInfo)
	}
	return a.Logger
}

func (a *App) tuiLogger() *slog.Logger {
	if a.TUILogger == nil {
		return config.NewLogger(nil, slog.LevelInfo)
	}
	return a.TUILogger
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// rootOptions are the persistent flags shared by all subcommands.
type rootOptions struct {
	dataPath     string
	configPath   string
	pixelsPerDay float64
	granularity  granularityValue
}

// NewRootCmd creates the top-level "gantt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "gantt",
		Short:         "Interactive project schedule chart",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.dataPath, "data", "", "timeline file (.json, .yaml); the demo plan when empty")
	pf.StringVar(&opts.configPath, "config", "", "view config file (.yaml)")
	pf.Float64Var(&opts.pixelsPerDay, "ppd", 0, "zoom in cells per day (overrides the config)")
	pf.Var(&opts.granularity, "granularity", "header bands, e.g. year,month or y,m,w,d")

	root.AddCommand(
		newViewCmd(app, opts),
		newGridCmd(app, opts),
		newLayoutCmd(app, opts),
		newDragCmd(app, opts),
		newEditCmd(app, opts),
		newWBSCmd(app, opts),
		newImportCmd(app, opts),
		newValidateCmd(app),
	)

	return root
}
