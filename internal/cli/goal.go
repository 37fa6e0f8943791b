// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"github.com/spf13/cobra"

	"networth-cli/internal/forecast"
	"networth-cli/internal/models"
)

// addGoalCommands adds goal management commands.
func addGoalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Net worth goal management",
		Long:  "Set, show and clear the active profile's net worth goal. The goal drives the forecast horizon and the stress test.",
	}

	cmd.AddCommand(newGoalSetCmd(app))
	cmd.AddCommand(newGoalShowCmd(app))
	cmd.AddCommand(newGoalClearCmd(app))

	rootCmd.AddCommand(cmd)
}

func newGoalSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "set <amount>",
		Short:   "Set the net worth goal",
		Example: `  networth goal set 1000000 --by 2045-01-01`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}

			value := models.ParseAmount(args[0])
			by, _ := cmd.Flags().GetString("by")
			target, err := ParseDate(by)
			if err != nil {
				output.Error("Invalid target date: %v", err)
				return err
			}

			goal := &models.Goal{Value: value, TargetDate: target}
			if err := app.Store.SetGoal(ctx, profile.ID, goal); err != nil {
				output.Error("Failed to set goal: %v", err)
				return err
			}

			app.Logger.Info().Float64("value", goal.Value).Time("target", goal.TargetDate).Msg("Goal set")
			if output.IsJSON() {
				return output.JSON(goal)
			}
			output.Success("✓ Goal set: %s by %s", output.Currency(goal.Value), FormatDate(goal.TargetDate))
			return nil
		},
	}
	cmd.Flags().String("by", "", "target date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("by")
	return cmd
}

func newGoalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the goal and projected achievement",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}
			if profile.Goal == nil {
				output.Info("No goal set. Set one with 'networth goal set <amount> --by <date>'.")
				return nil
			}

			engine := engineFor(profile, 0)
			netWorth := engine.NetWorth()
			hit := engine.ForecastGoalDate(nil, models.ScenarioBase, nil)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"goal":          profile.Goal,
					"netWorth":      netWorth,
					"projectedDate": hit,
				})
			}

			output.Bold("Goal")
			output.Printf("  Target:    %s by %s\n",
				output.Currency(profile.Goal.Value), FormatDate(profile.Goal.TargetDate))
			output.Printf("  Net worth: %s\n", output.Currency(netWorth))
			if profile.Goal.Value > 0 {
				pct, _ := forecast.FireProgress(netWorth, profile.Goal.Value)
				output.Printf("  Progress:  %.1f%%\n", pct)
			}
			if hit == nil {
				output.Warning("  Base scenario does not reach the goal within the horizon.")
			} else if hit.After(profile.Goal.TargetDate) {
				output.Warning("  Projected: %s (after target)", FormatDate(*hit))
			} else {
				output.Printf("  Projected: %s\n", output.Green(FormatDate(*hit)))
			}
			return nil
		},
	}
}

func newGoalClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}
			if err := app.Store.ClearGoal(ctx, profile.ID); err != nil {
				output.Error("Failed to clear goal: %v", err)
				return err
			}
			output.Success("✓ Goal cleared")
			return nil
		},
	}
}
