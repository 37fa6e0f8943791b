// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"networth-cli/internal/forecast"
	"networth-cli/internal/impexp"
	"networth-cli/internal/logging"
	"networth-cli/internal/models"
)

// addReportCommands adds the forecast and analysis commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newNetWorthCmd(app))
	rootCmd.AddCommand(newForecastCmd(app))
	rootCmd.AddCommand(newPassiveCmd(app))
	rootCmd.AddCommand(newStressCmd(app))
	rootCmd.AddCommand(newFireCmd(app))
}

func newNetWorthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "networth",
		Short: "Show current net worth",
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
			var assets, liabilities float64
			for i := range profile.Assets {
				assets += engine.CurrentValue(&profile.Assets[i])
			}
			for i := range profile.Liabilities {
				liabilities += engine.CurrentLiability(&profile.Liabilities[i])
			}
			netWorth := assets - liabilities

			if output.IsJSON() {
				return output.JSON(map[string]float64{
					"assets":      assets,
					"liabilities": liabilities,
					"netWorth":    netWorth,
				})
			}

			output.Bold("Net worth - %s", profile.Name)
			output.Printf("  Assets:      %s\n", output.Currency(assets))
			output.Printf("  Liabilities: %s\n", output.Currency(-liabilities))
			output.Printf("  Net worth:   %s\n", output.BoldText(output.Currency(netWorth)))
			return nil
		},
	}
}

func newForecastCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project net worth under low/base/high scenarios",
		Example: `  networth forecast
  networth forecast --years 10 --breakdown
  networth forecast --csv forecast.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}

			years, _ := cmd.Flags().GetInt("years")
			passiveOnly, _ := cmd.Flags().GetBool("passive")
			breakdown, _ := cmd.Flags().GetBool("breakdown")
			csvPath, _ := cmd.Flags().GetString("csv")

			engine := engineFor(profile, 0)
			set := engine.BuildScenarios(years, forecast.Options{
				PassiveOnly:      passiveOnly,
				IncludeBreakdown: breakdown,
			})
			logging.LogForecast(app.Logger, len(set.Labels)/12, len(profile.Assets), len(profile.Liabilities), passiveOnly)

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					output.Error("Failed to create %s: %v", csvPath, err)
					return err
				}
				defer f.Close()
				if err := impexp.WriteForecastCSV(f, set, app.Config.Display.DateFormat); err != nil {
					output.Error("Failed to write CSV: %v", err)
					return err
				}
				output.Success("✓ Forecast written to %s", csvPath)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(set)
			}

			output.Bold("Forecast - %s", profile.Name)
			output.Printf("  Today: %s\n", output.Currency(set.CurrentBaseline))
			output.Println()

			table := NewTable(output, "Date", "Low", "Base", "High")
			last := len(set.Labels) - 1
			for _, i := range forecastRows(last) {
				table.AddRow(
					FormatMonth(set.Labels[i]),
					output.Currency(set.Low[i]),
					output.Currency(set.Base[i]),
					output.Currency(set.High[i]),
				)
			}
			table.Render()

			if breakdown && len(set.AssetDetails) > 0 {
				output.Println()
				output.Bold("Per-asset outcome at horizon")
				detailTable := NewTable(output, "Asset", "Net rate", "Low", "Base", "High")
				for _, d := range set.AssetDetails {
					n := len(d.Series.Base) - 1
					detailTable.AddRow(
						TruncateString(d.Asset.Name, 24),
						FormatRate(d.NetRates[models.ScenarioBase]),
						output.Currency(d.Series.Low[n]),
						output.Currency(d.Series.Base[n]),
						output.Currency(d.Series.High[n]),
					)
				}
				detailTable.Render()
			}
			return nil
		},
	}
	cmd.Flags().Int("years", 0, "horizon in years (default: goal horizon)")
	cmd.Flags().Bool("passive", false, "restrict to passive-eligible assets")
	cmd.Flags().Bool("breakdown", false, "include per-asset detail")
	cmd.Flags().String("csv", "", "write the series to a CSV file instead of printing")
	return cmd
}

// forecastRows picks yearly sample indexes plus the final month so the table
// stays readable on long horizons.
func forecastRows(last int) []int {
	var rows []int
	for i := 0; i <= last; i += 12 {
		rows = append(rows, i)
	}
	if len(rows) == 0 || rows[len(rows)-1] != last {
		rows = append(rows, last)
	}
	return rows
}

func newPassiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passive",
		Short: "Estimate passive income",
		Example: `  networth passive
  networth passive --at 2035-01-01 --scenario high`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}

			scenarioStr, _ := cmd.Flags().GetString("scenario")
			scenario := models.NormalizeScenario(scenarioStr)
			target := time.Now()
			if at, _ := cmd.Flags().GetString("at"); at != "" {
				t, err := ParseDate(at)
				if err != nil {
					output.Error("Invalid date: %v", err)
					return err
				}
				target = t
			}

			engine := engineFor(profile, 0)
			selection := forecast.SelectionSet(profile.PassiveSelection)
			income := engine.PassiveIncomeAt(target, scenario, selection)

			if output.IsJSON() {
				return output.JSON(income)
			}

			output.Bold("Passive income - %s scenario at %s", scenario, FormatDate(target))
			output.Printf("  Contributing worth: %s\n", output.Currency(income.Worth))
			output.Printf("  Annual:             %s\n", output.BoldText(output.Currency(income.Annual)))
			output.Printf("  Monthly:            %s\n", output.Currency(income.Monthly))
			output.Printf("  Weekly:             %s\n", output.Currency(income.Weekly))
			output.Printf("  Daily:              %s\n", output.Currency(income.Daily))
			return nil
		},
	}
	cmd.Flags().String("at", "", "target date (YYYY-MM-DD); defaults to today")
	cmd.Flags().String("scenario", "base", "growth scenario: low|base|high")
	cmd.AddCommand(newPassiveSelectCmd(app))
	return cmd
}

func newPassiveSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select [asset...]",
		Short: "Restrict passive income to specific assets",
		Long:  "Choose which assets count toward passive income. With no arguments the restriction is cleared and all eligible assets count.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}

			var ids []string
			for _, ref := range args {
				asset, err := findAsset(profile, ref)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				ids = append(ids, asset.ID)
			}
			if err := app.Store.SetPassiveSelection(ctx, profile.ID, ids); err != nil {
				output.Error("Failed to update selection: %v", err)
				return err
			}

			if len(ids) == 0 {
				output.Success("✓ Passive selection cleared; all eligible assets count")
			} else {
				output.Success("✓ Passive income restricted to %d assets", len(ids))
			}
			return nil
		},
	}
}

func newStressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Monte Carlo stress test of the goal date",
		Long: `Repeatedly re-runs the goal forecast under randomized market shocks and
reports how often and when the goal is reached. Requires a goal.`,
		Example: `  networth stress
  networth stress --iterations 1000 --scenario low --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}
			if profile.Goal == nil || profile.Goal.Value <= 0 {
				output.Warning("No goal set. Set one with 'networth goal set <amount> --by <date>'.")
				return nil
			}

			iterations, _ := cmd.Flags().GetInt("iterations")
			if !cmd.Flags().Changed("iterations") {
				iterations = app.Config.Stress.Iterations
			}
			scenarioStr, _ := cmd.Flags().GetString("scenario")
			scenario := models.NormalizeScenario(scenarioStr)
			seed, _ := cmd.Flags().GetInt64("seed")

			engine := engineFor(profile, seed)
			started := time.Now()
			result := engine.RunStressTest(iterations, scenario, nil)
			logging.LogStressRun(app.Logger, iterations, result.Pct, time.Since(started))

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Stress test - %s scenario, %d iterations", scenario, result.Iterations)
			output.Printf("  Goal:        %s by %s\n",
				output.Currency(profile.Goal.Value), FormatDate(profile.Goal.TargetDate))
			output.Printf("  Baseline:    %s\n", FormatOptionalDate(result.Baseline))
			output.Println()

			pct := result.Pct * 100
			line := output.Green
			if pct < 50 {
				line = output.Red
			} else if pct < 80 {
				line = output.Yellow
			}
			output.Printf("  Goal reached in %s of runs\n", line(FormatRate(pct)))
			output.Printf("  Earliest:    %s\n", FormatOptionalDate(result.Earliest))
			output.Printf("  Median:      %s\n", FormatOptionalDate(result.Median))
			output.Printf("  Latest:      %s\n", FormatOptionalDate(result.Latest))

			if result.Sample != nil && len(result.Sample.Events) > 0 {
				output.Println()
				output.Dim("Sample run: %d shocks, goal %s", len(result.Sample.Events),
					hitVerdict(result.Sample.HitDate))
			}
			return nil
		},
	}
	cmd.Flags().Int("iterations", 0, "iteration count (default from config)")
	cmd.Flags().String("scenario", "base", "growth scenario: low|base|high")
	cmd.Flags().Int64("seed", 0, "random seed for reproducible runs")
	return cmd
}

func hitVerdict(hit *time.Time) string {
	if hit == nil {
		return "not reached"
	}
	return "reached " + FormatDate(*hit)
}

func newFireCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fire",
		Short: "FIRE number, progress and passive coverage dates",
		Example: `  networth fire --expenses 30000
  networth fire --expenses 30000 --rate 3.5 --inflation 3 --retirement 2045-01-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}

			expenses, _ := cmd.Flags().GetFloat64("expenses")
			rate, _ := cmd.Flags().GetFloat64("rate")
			if !cmd.Flags().Changed("rate") {
				rate = app.Config.Fire.WithdrawalRate
			}
			inflation, _ := cmd.Flags().GetFloat64("inflation")
			if !cmd.Flags().Changed("inflation") {
				inflation = app.Config.Fire.InflationRate
			}
			var retirement *time.Time
			if s, _ := cmd.Flags().GetString("retirement"); s != "" {
				t, err := ParseDate(s)
				if err != nil {
					output.Error("Invalid retirement date: %v", err)
					return err
				}
				retirement = &t
			}

			engine := engineFor(profile, 0)
			fireNumber := forecast.FireNumber(expenses, rate)
			netWorth := engine.NetWorth()
			progress, raw := forecast.FireProgress(netWorth, fireNumber)
			coverage := engine.PassiveCoverage(expenses, inflation, retirement)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"fireNumber": fireNumber,
					"netWorth":   netWorth,
					"progress":   progress,
					"coverage":   coverage,
				})
			}

			output.Bold("FIRE")
			output.Printf("  Annual expenses:  %s\n", output.Currency(expenses))
			output.Printf("  Withdrawal rate:  %s\n", FormatRate(rate))
			output.Printf("  FIRE number:      %s\n", output.BoldText(output.Currency(fireNumber)))
			output.Printf("  Net worth:        %s\n", output.Currency(netWorth))
			if raw >= 100 {
				output.Success("  Progress:         %.1f%% (target met)", progress)
			} else {
				output.Printf("  Progress:         %.1f%%\n", progress)
			}
			output.Println()

			output.Bold("Passive income covers expenses")
			table := NewTable(output, "Scenario", "Flat costs", "With inflation")
			for _, s := range models.Scenarios {
				table.AddRow(
					string(s),
					FormatOptionalDate(coverage.WithoutInflation[s]),
					FormatOptionalDate(coverage.WithInflation[s]),
				)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Float64("expenses", 0, "annual living expenses")
	cmd.Flags().Float64("rate", 0, "safe withdrawal rate % (default from config)")
	cmd.Flags().Float64("inflation", 0, "annual inflation % (default from config)")
	cmd.Flags().String("retirement", "", "earliest retirement date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("expenses")
	return cmd
}
