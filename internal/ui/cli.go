package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnanh/tripline/internal/activity"
	"github.com/dnanh/tripline/internal/config"
	"github.com/dnanh/tripline/internal/dateutil"
	"github.com/dnanh/tripline/internal/db"
	"github.com/dnanh/tripline/internal/llm"
	"github.com/dnanh/tripline/internal/suggest"
	"github.com/dnanh/tripline/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   activity.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given config. The
// repository is opened lazily by the commands that need it.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "tripline [date]",
		Short: "An interactive timeline editor for trip day plans",
		Long: `Tripline is a terminal timeline editor for planning trip days.

Each day is a chart of time blocks grouped by place: drag blocks
around, resize them, duplicate them, and edit the details in a
floating inspector. Run it with no arguments to open today's plan.

The date argument accepts YYYY-MM-DD, "today", "tomorrow",
"yesterday", or a weekday name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			date, err := dateutil.ParseRelativeDate(arg, time.Now())
			if err != nil {
				return fmt.Errorf("parsing date %q: %w", arg, err)
			}

			return tui.RunWithDebug(a.repo, a.config, a.suggester(), date, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.suggestCmd())

	return a
}

// ensureRepo opens the SQLite repository at the configured path,
// creating the parent directory on first run.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	dbPath := a.config.Storage.DBPath
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	repo, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// suggester builds the LLM-backed day planner, or nil when no
// provider is configured. The TUI treats a nil suggester as "feature
// off".
func (a *App) suggester() *suggest.Suggester {
	if a.config.LLM.Provider == "" {
		return nil
	}
	client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: LLM suggestions disabled: %v\n", err)
		return nil
	}
	return suggest.NewSuggester(client)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("tripline %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if a command opened it.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
