package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/gantt/internal/cli"
	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/intelligence"
	"github.com/alexanderramin/gantt/internal/llm"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, closeLog, err := config.LoggerFromEnv(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	app := &cli.App{
		Logger:    logger,
		TUILogger: logger,
	}
	// The chart owns the terminal, so without a log file it logs nowhere.
	if os.Getenv("GANTT_LOG_FILE") == "" {
		app.TUILogger = config.NewLogger(nil, slog.LevelInfo)
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// Wire intelligence services (only when LLM is enabled)
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client := llm.NewClient(llmCfg, observer)
		app.Parser = intelligence.NewImageParser(client)
		app.Breakdown = intelligence.NewBreakdownGenerator(client)
	}

	return cli.NewRootCmd(app).Execute()
}
