// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"github.com/spf13/cobra"

	"networth-cli/internal/forecast"
	"networth-cli/internal/models"
)

// addTaxCommands adds tax settings commands.
func addTaxCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Tax settings",
		Long: `Configure the active profile's UK tax band and annual allowance pools.
Allowances apply once per pool across all assets sharing a treatment, not
once per asset.`,
	}

	cmd.AddCommand(newTaxSetCmd(app))
	cmd.AddCommand(newTaxShowCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTaxSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set tax band and allowances",
		Example: `  networth tax set --band higher
  networth tax set --band basic --income-allowance 1000 --dividend-allowance 500 --capital-allowance 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}

			tax := profile.Tax
			if cmd.Flags().Changed("band") {
				band, _ := cmd.Flags().GetString("band")
				tax.Band = models.NormalizeTaxBand(band)
			}
			if cmd.Flags().Changed("income-allowance") {
				tax.IncomeAllowance, _ = cmd.Flags().GetFloat64("income-allowance")
			}
			if cmd.Flags().Changed("dividend-allowance") {
				tax.DividendAllowance, _ = cmd.Flags().GetFloat64("dividend-allowance")
			}
			if cmd.Flags().Changed("capital-allowance") {
				tax.CapitalAllowance, _ = cmd.Flags().GetFloat64("capital-allowance")
			}
			models.NormalizeTaxSettings(&tax)

			if err := app.Store.SetTaxSettings(ctx, profile.ID, tax); err != nil {
				output.Error("Failed to update tax settings: %v", err)
				return err
			}

			app.Logger.Info().Str("band", string(tax.Band)).Msg("Tax settings updated")
			if output.IsJSON() {
				return output.JSON(tax)
			}
			output.Success("✓ Tax settings updated (%s band)", tax.Band)
			return nil
		},
	}
	cmd.Flags().String("band", "", "tax band: basic|higher|additional")
	cmd.Flags().Float64("income-allowance", 0, "annual income allowance")
	cmd.Flags().Float64("dividend-allowance", 0, "annual dividend allowance")
	cmd.Flags().Float64("capital-allowance", 0, "annual capital gains allowance")
	return cmd
}

func newTaxShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show tax settings and per-asset net rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}

			engine := engineFor(profile, 0)
			comp := engine.ComputeAssetTaxDetails()
			rates := forecast.RatesForBand(profile.Tax.Band)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"settings": profile.Tax,
					"rates":    rates,
					"assets":   comp.Details,
				})
			}

			output.Bold("Tax settings")
			output.Printf("  Band:               %s\n", profile.Tax.Band)
			output.Printf("  Income rate:        %s\n", FormatRate(rates.Income))
			output.Printf("  Dividend rate:      %s\n", FormatRate(rates.Dividend))
			output.Printf("  Capital gains rate: %s\n", FormatRate(rates.CapitalGains))
			output.Println()
			output.Printf("  Income allowance:   %s\n", output.Currency(profile.Tax.IncomeAllowance))
			output.Printf("  Dividend allowance: %s\n", output.Currency(profile.Tax.DividendAllowance))
			output.Printf("  Capital allowance:  %s\n", output.Currency(profile.Tax.CapitalAllowance))

			if len(profile.Assets) == 0 {
				return nil
			}
			output.Println()
			output.Bold("Base-scenario net rates")
			table := NewTable(output, "Asset", "Treatment", "Gross", "Tax due", "Net")
			for i := range profile.Assets {
				a := &profile.Assets[i]
				detail := comp.Details[a.ID]
				st := detail.Scenarios[models.ScenarioBase]
				table.AddRow(
					TruncateString(a.Name, 24),
					string(a.TaxTreatment),
					FormatRate(st.GrossRate),
					output.Currency(st.TaxDue),
					FormatRate(st.NetRate),
				)
			}
			table.Render()
			return nil
		},
	}
}
