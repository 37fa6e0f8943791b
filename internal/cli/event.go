// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"networth-cli/internal/models"
)

// addEventCommands adds one-off event commands.
func addEventCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "One-off event management",
		Long: `Record one-off adjustments to the forecast: an inheritance, a house
purchase, a market shock. Percent events scale the target; absolute events
add or subtract a fixed amount. Events without a target asset apply to the
aggregate net worth series.`,
	}

	cmd.AddCommand(newEventAddCmd(app))
	cmd.AddCommand(newEventListCmd(app))
	cmd.AddCommand(newEventRemoveCmd(app))

	rootCmd.AddCommand(cmd)
}

func newEventAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event to the active profile",
		Example: `  networth event add --date 2030-06-01 --amount 50000
  networth event add --date 2028-01-01 --amount -20 --percent --asset "Stocks ISA"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}

			dateStr, _ := cmd.Flags().GetString("date")
			date, err := ParseDate(dateStr)
			if err != nil {
				output.Error("Invalid date: %v", err)
				return err
			}
			amount, _ := cmd.Flags().GetFloat64("amount")
			isPercent, _ := cmd.Flags().GetBool("percent")
			assetRef, _ := cmd.Flags().GetString("asset")

			event := &models.Event{
				Date:      date,
				Amount:    amount,
				IsPercent: isPercent,
			}
			if assetRef != "" {
				asset, err := findAsset(profile, assetRef)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				event.AssetID = asset.ID
			}
			models.NormalizeEvent(event)

			if err := app.Store.AddEvent(ctx, profile.ID, event); err != nil {
				output.Error("Failed to add event: %v", err)
				return err
			}

			app.Logger.Info().
				Time("date", event.Date).
				Float64("amount", event.Amount).
				Bool("percent", event.IsPercent).
				Msg("Event added")
			if output.IsJSON() {
				return output.JSON(event)
			}
			output.Success("✓ Event recorded for %s", FormatDate(event.Date))
			return nil
		},
	}
	cmd.Flags().String("date", "", "event date (YYYY-MM-DD)")
	cmd.Flags().Float64("amount", 0, "amount (currency, or percent with --percent)")
	cmd.Flags().Bool("percent", false, "treat amount as a percentage change")
	cmd.Flags().String("asset", "", "target asset (id or name); omit for a global event")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events on the active profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.activeProfile(ctx)
			if err != nil {
				output.Error("No active profile: %v", err)
				return err
			}
			events, err := app.Store.ListEvents(ctx, profile.ID)
			if err != nil {
				output.Error("Failed to list events: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(events)
			}
			if len(events) == 0 {
				output.Info("No events.")
				return nil
			}

			table := NewTable(output, "#", "Date", "Amount", "Target")
			for _, se := range events {
				amount := output.FormatDelta(se.Event.Amount)
				if se.Event.IsPercent {
					amount = output.FormatSignedPercent(se.Event.Amount)
				}
				target := "net worth"
				if se.Event.AssetID != "" {
					target = se.Event.AssetID
					if asset, err := findAsset(profile, se.Event.AssetID); err == nil {
						target = asset.Name
					}
				}
				table.AddRow(
					fmt.Sprintf("%d", se.RowID),
					FormatDate(se.Event.Date),
					amount,
					TruncateString(target, 24),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <number>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an event by its list number",
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

			var rowID int64
			if _, err := fmt.Sscanf(args[0], "%d", &rowID); err != nil {
				output.Error("Invalid event number %q", args[0])
				return err
			}
			if err := app.Store.RemoveEvent(ctx, profile.ID, rowID); err != nil {
				output.Error("Failed to remove event: %v", err)
				return err
			}

			output.Success("✓ Event %d removed", rowID)
			return nil
		},
	}
}
