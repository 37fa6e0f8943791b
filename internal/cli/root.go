// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"networth-cli/internal/config"
	apperrors "networth-cli/internal/errors"
	"networth-cli/internal/forecast"
	"networth-cli/internal/logging"
	"networth-cli/internal/models"
	"networth-cli/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-01-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.ProfileStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger, profileStore store.ProfileStore) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Store:  profileStore,
	}

	rootCmd := &cobra.Command{
		Use:   "networth",
		Short: "Personal net worth forecaster",
		Long: `networth is a personal finance CLI that tracks assets and liabilities
across profiles and projects net worth under low, base and high growth
scenarios, with UK tax treatment, passive income estimates, Monte Carlo
goal stress tests and FIRE calculators.

Use 'networth help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/networth)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addProfileCommands(rootCmd, app)
	addAssetCommands(rootCmd, app)
	addLiabilityCommands(rootCmd, app)
	addEventCommands(rootCmd, app)
	addGoalCommands(rootCmd, app)
	addTaxCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	addImportExportCommands(rootCmd, app)

	return rootCmd
}

// newOutput builds an Output configured from the app's display settings.
func (app *App) newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cmd,
		WithCurrency(app.Config.Display.Currency),
		WithColor(app.Config.Display.ColorEnabled && isTerminal()),
	)
}

// cmdContext returns a bounded context for store operations.
func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// activeProfile loads the currently active profile.
func (app *App) activeProfile(ctx context.Context) (*models.Profile, error) {
	if app.Store == nil {
		return nil, apperrors.ErrDatabaseError
	}
	profile, err := app.Store.ActiveProfile(ctx)
	if err != nil {
		return nil, err
	}
	models.NormalizeProfile(profile)
	return profile, nil
}

// resolveProfile finds a profile by name, or falls back to the active one
// when name is empty.
func (app *App) resolveProfile(ctx context.Context, name string) (*models.Profile, error) {
	if name == "" {
		return app.activeProfile(ctx)
	}
	profile, err := app.Store.GetProfileByName(ctx, name)
	if err != nil {
		return nil, err
	}
	models.NormalizeProfile(profile)
	return profile, nil
}

// engineFor builds a forecast engine over a profile's snapshot. A non-zero
// seed pins the stress-test randomness.
func engineFor(profile *models.Profile, seed int64) *forecast.Engine {
	opts := []forecast.Option{}
	if seed != 0 {
		opts = append(opts, forecast.WithSeed(seed))
	}
	return forecast.New(models.SnapshotOf(profile), opts...)
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
				output.Printf("networth v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
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

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Display")
	output.Printf("  Currency:      %s\n", cfg.Display.Currency)
	output.Printf("  Color:         %v\n", cfg.Display.ColorEnabled)
	output.Printf("  Date format:   %s\n", cfg.Display.DateFormat)
	output.Println()

	output.Bold("Forecast")
	output.Printf("  Default years: %d\n", cfg.Forecast.DefaultYears)
	output.Println()

	output.Bold("FIRE")
	output.Printf("  Withdrawal:    %.1f%%\n", cfg.Fire.WithdrawalRate)
	output.Printf("  Inflation:     %.1f%%\n", cfg.Fire.InflationRate)
	output.Println()

	output.Bold("Stress test")
	output.Printf("  Iterations:    %d\n", cfg.Stress.Iterations)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:         %s\n", cfg.Logging.Level)
	output.Printf("  Console:       %v\n", cfg.Logging.Console)
	output.Printf("  File:          %v\n", cfg.Logging.File)

	return nil
}

// findAsset resolves an asset reference: exact id, id prefix, or exact name.
func findAsset(profile *models.Profile, ref string) (*models.Asset, error) {
	var prefixMatch *models.Asset
	for i := range profile.Assets {
		a := &profile.Assets[i]
		if a.ID == ref || a.Name == ref {
			return a, nil
		}
		if len(ref) >= 4 && len(a.ID) > len(ref) && a.ID[:len(ref)] == ref {
			if prefixMatch != nil {
				return nil, fmt.Errorf("asset reference %q is ambiguous", ref)
			}
			prefixMatch = a
		}
	}
	if prefixMatch != nil {
		return prefixMatch, nil
	}
	return nil, apperrors.ErrAssetNotFound
}

// findLiability resolves a liability reference like findAsset.
func findLiability(profile *models.Profile, ref string) (*models.Liability, error) {
	var prefixMatch *models.Liability
	for i := range profile.Liabilities {
		l := &profile.Liabilities[i]
		if l.ID == ref || l.Name == ref {
			return l, nil
		}
		if len(ref) >= 4 && len(l.ID) > len(ref) && l.ID[:len(ref)] == ref {
			if prefixMatch != nil {
				return nil, fmt.Errorf("liability reference %q is ambiguous", ref)
			}
			prefixMatch = l
		}
	}
	if prefixMatch != nil {
		return prefixMatch, nil
	}
	return nil, apperrors.ErrLiabilityNotFound
}
