// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trade-journal/internal/config"
	"trade-journal/internal/journal"
	"trade-journal/internal/store"
	"trade-journal/pkg/utils"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-01-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.KV
	Prefs   *store.Prefs
	Session *journal.Session
}

// NewApp opens the store and restores the session. A store that cannot be
// opened degrades to an in-memory one so read-only commands still work.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	kv, err := store.NewSQLiteStore(cfg.Journal.DBPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Journal.DBPath).Msg("Failed to open store, changes will not be saved")
		app.Store = store.NewMemoryStore()
	} else {
		app.Store = kv
		logger.Debug().Str("path", cfg.Journal.DBPath).Msg("SQLite store initialized")
	}

	app.Prefs = store.NewPrefs(app.Store, logger)
	app.Session = journal.NewSession(app.Prefs, logger, journal.Options{
		PersistSession: cfg.Journal.PersistSession,
		SeedStrategies: cfg.Journal.SeedStrategies,
	})
	app.Session.Restore(context.Background())

	if cfg.UI.CurrencySymbol != "" {
		utils.CurrencySymbol = cfg.UI.CurrencySymbol
	}
	if cfg.UI.DateFormat != "" {
		dateFormat = cfg.UI.DateFormat
	}
	colorAllowed = cfg.UI.ColorEnabled
	return app
}

// Close releases the store.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// NewRootCmd creates the root command for the CLI. The returned App must be
// closed once the command has run.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) (*cobra.Command, *App) {
	app := NewApp(cfg, logger)
	return newRootCmd(app), app
}

func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Trade Journal - log trades, review performance, follow your playbook",
		Long: `Trade Journal records your trades, derives risk/reward, P&L and points
from your prices, and reviews performance by day, week, platform and strategy.

A playbook of strategies drives the pre-trade checklist; the checklist score
is stored with every trade you log.

Use 'journal help <command>' for more information about a command.
Use 'journal examples' to see common workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trade-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "answer yes to confirmation prompts")

	addCoreCommands(rootCmd, app)
	addAuthCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addReviewCommands(rootCmd, app)
	addPlaybookCommands(rootCmd, app)
	addChecklistCommands(rootCmd, app)
	addOptionsCommands(rootCmd, app)
	addServeCommand(rootCmd, app)
	addHelpCommands(rootCmd, app)

	return rootCmd
}

// ConfigDirFromArgs finds the --config flag before cobra parses the
// arguments, since configuration is loaded before the command tree exists.
func ConfigDirFromArgs(args []string) string {
	for i, a := range args {
		switch {
		case a == "--config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Trade Journal v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": app.Config.Path()})
			} else {
				output.Println(app.Config.Path())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Journal")
	output.Printf("  Database:        %s\n", cfg.Journal.DBPath)
	output.Printf("  Persist Session: %v\n", cfg.Journal.PersistSession)
	output.Printf("  Seed Playbook:   %v\n", cfg.Journal.SeedStrategies)
	output.Println()

	output.Bold("Display")
	output.Printf("  Color:           %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Date Format:     %s\n", cfg.UI.DateFormat)
	output.Printf("  Currency:        %s\n", cfg.UI.CurrencySymbol)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %v (%s)\n", cfg.Logging.File, cfg.Logging.FilePath)
	output.Println()

	output.Bold("API")
	output.Printf("  Address:         %s\n", cfg.API.Addr)
	output.Printf("  Mode:            %s\n", cfg.API.Mode)
	output.Printf("  Rate Limit:      %.1f/s (burst %d)\n", cfg.API.RateLimit, cfg.API.RateBurst)
	output.Printf("  Read Only:       %v\n", cfg.API.ReadOnly)
}
