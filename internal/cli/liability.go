// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"networth-cli/internal/forecast"
	"networth-cli/internal/models"
)

// addLiabilityCommands adds liability management commands.
func addLiabilityCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "liability",
		Short: "Liability management",
		Long:  "Add, list and remove liabilities on the active profile.",
	}

	cmd.AddCommand(newLiabilityAddCmd(app))
	cmd.AddCommand(newLiabilityListCmd(app))
	cmd.AddCommand(newLiabilityRemoveCmd(app))

	rootCmd.AddCommand(cmd)
}

func newLiabilityAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a liability to the active profile",
		Example: `  networth liability add Mortgage --value 250000 --rate 4.5 --payment 1400
  networth liability add "Car loan" --value 12000 --rate 7 --payment 300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}

			value, _ := cmd.Flags().GetFloat64("value")
			rate, _ := cmd.Flags().GetFloat64("rate")
			payment, _ := cmd.Flags().GetFloat64("payment")

			liability := &models.Liability{
				ID:             models.NewID(),
				Name:           args[0],
				Value:          value,
				InterestRate:   rate,
				MonthlyPayment: payment,
				CreatedAt:      time.Now(),
			}
			if s, _ := cmd.Flags().GetString("start"); s != "" {
				t, err := ParseDate(s)
				if err != nil {
					output.Error("Invalid start date: %v", err)
					return err
				}
				liability.StartDate = t
			}
			models.NormalizeLiability(liability)

			if err := app.Store.AddLiability(ctx, profile.ID, liability); err != nil {
				output.Error("Failed to add liability: %v", err)
				return err
			}

			app.Logger.Info().Str("liability", liability.Name).Float64("value", liability.Value).Msg("Liability added")
			if output.IsJSON() {
				return output.JSON(liability)
			}
			output.Success("✓ Liability %q added (%s)", liability.Name, ShortID(liability.ID))
			return nil
		},
	}
	cmd.Flags().Float64("value", 0, "outstanding balance")
	cmd.Flags().Float64("rate", 0, "annual interest rate %")
	cmd.Flags().Float64("payment", 0, "monthly payment")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD); defaults to today")
	return cmd
}

func newLiabilityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List liabilities on the active profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(profile.Liabilities)
			}
			if len(profile.Liabilities) == 0 {
				output.Info("No liabilities.")
				return nil
			}

			now := time.Now()
			var total float64
			table := NewTable(output, "ID", "Name", "Balance", "Rate", "Payment")
			for i := range profile.Liabilities {
				l := &profile.Liabilities[i]
				balance := forecast.LiabilityBalanceAt(l, now)
				total += balance
				table.AddRow(
					ShortID(l.ID),
					TruncateString(l.Name, 24),
					output.Currency(balance),
					FormatRate(l.InterestRate),
					output.Currency(l.MonthlyPayment),
				)
			}
			table.Render()
			output.Println()
			output.Printf("Total outstanding: %s\n", output.BoldText(output.Currency(total)))
			return nil
		},
	}
}

func newLiabilityRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|name>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a liability",
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
			liability, err := findLiability(profile, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if err := app.Store.RemoveLiability(ctx, profile.ID, liability.ID); err != nil {
				output.Error("Failed to remove liability: %v", err)
				return err
			}

			app.Logger.Info().Str("liability", liability.Name).Msg("Liability removed")
			output.Success("✓ Liability %q removed", liability.Name)
			return nil
		},
	}
}
