// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"networth-cli/internal/models"
)

// addAssetCommands adds asset management commands.
func addAssetCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Asset management",
		Long:  "Add, list, edit and remove assets on the active profile.",
	}

	cmd.AddCommand(newAssetAddCmd(app))
	cmd.AddCommand(newAssetListCmd(app))
	cmd.AddCommand(newAssetEditCmd(app))
	cmd.AddCommand(newAssetRemoveCmd(app))

	rootCmd.AddCommand(cmd)
}

func addAssetFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("value", 0, "principal value")
	cmd.Flags().Float64("return", 0, "base annual growth rate %")
	cmd.Flags().Float64("low", 0, "low-scenario annual growth rate %")
	cmd.Flags().Float64("high", 0, "high-scenario annual growth rate %")
	cmd.Flags().Float64("deposit", 0, "recurring deposit amount")
	cmd.Flags().String("frequency", "none", "deposit frequency: none|monthly|quarterly|yearly")
	cmd.Flags().Int("deposit-day", 1, "day of month deposits land on (1-31)")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD); defaults to today")
	cmd.Flags().String("tax", "tax-free", "tax treatment: tax-free|income|dividend|capital-gains")
	cmd.Flags().Bool("passive", true, "count toward passive income")
}

// applyAssetFlags copies any explicitly set flags onto the asset.
func applyAssetFlags(cmd *cobra.Command, a *models.Asset) error {
	if cmd.Flags().Changed("value") {
		a.Value, _ = cmd.Flags().GetFloat64("value")
	}
	if cmd.Flags().Changed("return") {
		a.Return, _ = cmd.Flags().GetFloat64("return")
	}
	if cmd.Flags().Changed("low") {
		v, _ := cmd.Flags().GetFloat64("low")
		a.LowGrowth = &v
	}
	if cmd.Flags().Changed("high") {
		v, _ := cmd.Flags().GetFloat64("high")
		a.HighGrowth = &v
	}
	if cmd.Flags().Changed("deposit") {
		a.OriginalDeposit, _ = cmd.Flags().GetFloat64("deposit")
	}
	if cmd.Flags().Changed("frequency") {
		f, _ := cmd.Flags().GetString("frequency")
		a.DepositFrequency = models.NormalizeFrequency(f)
	}
	if cmd.Flags().Changed("deposit-day") {
		a.DepositDay, _ = cmd.Flags().GetInt("deposit-day")
	}
	if cmd.Flags().Changed("start") {
		s, _ := cmd.Flags().GetString("start")
		t, err := ParseDate(s)
		if err != nil {
			return err
		}
		a.StartDate = t
	}
	if cmd.Flags().Changed("tax") {
		t, _ := cmd.Flags().GetString("tax")
		a.TaxTreatment = models.NormalizeTaxTreatment(t)
	}
	if cmd.Flags().Changed("passive") {
		v, _ := cmd.Flags().GetBool("passive")
		a.IncludeInPassive = &v
	}
	return nil
}

func newAssetAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an asset to the active profile",
		Example: `  networth asset add "Stocks ISA" --value 20000 --return 7 --tax tax-free
  networth asset add Pension --value 80000 --return 5 --low 2 --high 8 \
    --deposit 500 --frequency monthly --tax income`,
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

			asset := &models.Asset{
				ID:        models.NewID(),
				Name:      args[0],
				CreatedAt: time.Now(),
			}
			if err := applyAssetFlags(cmd, asset); err != nil {
				output.Error("Invalid flag: %v", err)
				return err
			}
			models.NormalizeAsset(asset)

			if err := app.Store.AddAsset(ctx, profile.ID, asset); err != nil {
				output.Error("Failed to add asset: %v", err)
				return err
			}

			app.Logger.Info().Str("asset", asset.Name).Float64("value", asset.Value).Msg("Asset added")
			if output.IsJSON() {
				return output.JSON(asset)
			}
			output.Success("✓ Asset %q added (%s)", asset.Name, ShortID(asset.ID))
			return nil
		},
	}
	addAssetFlags(cmd)
	return cmd
}

func newAssetListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List assets on the active profile",
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
				return output.JSON(profile.Assets)
			}
			if len(profile.Assets) == 0 {
				output.Info("No assets yet. Add one with 'networth asset add <name>'.")
				return nil
			}

			engine := engineFor(profile, 0)
			table := NewTable(output, "ID", "Name", "Value", "Return", "Deposit", "Tax", "Passive")
			for i := range profile.Assets {
				a := &profile.Assets[i]
				deposit := "-"
				if a.DepositFrequency != models.FrequencyNone {
					deposit = output.Currency(a.OriginalDeposit) + "/" + string(a.DepositFrequency)
				}
				passive := "yes"
				if !a.PassiveEligible() {
					passive = "no"
				}
				table.AddRow(
					ShortID(a.ID),
					TruncateString(a.Name, 24),
					output.Currency(engine.CurrentValue(a)),
					FormatRate(a.Return),
					deposit,
					string(a.TaxTreatment),
					passive,
				)
			}
			table.Render()
			output.Println()
			output.Printf("Total: %s\n", output.BoldText(output.Currency(engine.NetWorth())))
			return nil
		},
	}
}

func newAssetEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Edit an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}
			asset, err := findAsset(profile, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if cmd.Flags().Changed("name") {
				asset.Name, _ = cmd.Flags().GetString("name")
			}
			if err := applyAssetFlags(cmd, asset); err != nil {
				output.Error("Invalid flag: %v", err)
				return err
			}
			models.NormalizeAsset(asset)

			if err := app.Store.UpdateAsset(ctx, profile.ID, asset); err != nil {
				output.Error("Failed to update asset: %v", err)
				return err
			}

			app.Logger.Info().Str("asset", asset.Name).Msg("Asset updated")
			if output.IsJSON() {
				return output.JSON(asset)
			}
			output.Success("✓ Asset %q updated", asset.Name)
			return nil
		},
	}
	addAssetFlags(cmd)
	cmd.Flags().String("name", "", "rename the asset")
	return cmd
}

func newAssetRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|name>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an asset",
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
			asset, err := findAsset(profile, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if err := app.Store.RemoveAsset(ctx, profile.ID, asset.ID); err != nil {
				output.Error("Failed to remove asset: %v", err)
				return err
			}

			app.Logger.Info().Str("asset", asset.Name).Msg("Asset removed")
			output.Success("✓ Asset %q removed", asset.Name)
			return nil
		},
	}
}
