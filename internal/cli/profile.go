// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"networth-cli/internal/models"
)

// addProfileCommands adds profile management commands.
func addProfileCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile management",
		Long:  "Create, list, switch between and delete profiles. Exactly one profile is active at a time.",
	}

	cmd.AddCommand(newProfileAddCmd(app))
	cmd.AddCommand(newProfileListCmd(app))
	cmd.AddCommand(newProfileUseCmd(app))
	cmd.AddCommand(newProfileShowCmd(app))
	cmd.AddCommand(newProfileRemoveCmd(app))

	rootCmd.AddCommand(cmd)
}

func newProfileAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new profile",
		Example: `  networth profile add personal
  networth profile add "joint savings" --currency £`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			currency, _ := cmd.Flags().GetString("currency")
			profile := &models.Profile{
				ID:       models.NewID(),
				Name:     args[0],
				Currency: currency,
			}
			if err := app.Store.CreateProfile(ctx, profile); err != nil {
				output.Error("Failed to create profile: %v", err)
				return err
			}

			app.Logger.Info().Str("profile", profile.Name).Msg("Profile created")
			if output.IsJSON() {
				return output.JSON(profile)
			}
			output.Success("✓ Profile %q created (%s)", profile.Name, ShortID(profile.ID))
			return nil
		},
	}
	cmd.Flags().String("currency", "", "currency symbol for this profile")
	return cmd
}

func newProfileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profiles, err := app.Store.ListProfiles(ctx)
			if err != nil {
				output.Error("Failed to list profiles: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(profiles)
			}

			if len(profiles) == 0 {
				output.Info("No profiles yet. Create one with 'networth profile add <name>'.")
				return nil
			}

			table := NewTable(output, "", "Name", "ID", "Assets", "Created")
			for _, p := range profiles {
				marker := " "
				if p.Active {
					marker = output.Green("●")
				}
				table.AddRow(
					marker,
					p.Name,
					ShortID(p.ID),
					fmt.Sprintf("%d", p.Assets),
					FormatDate(p.CreatedAt),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newProfileUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			profile, err := app.Store.GetProfileByName(ctx, args[0])
			if err != nil {
				output.Error("Profile %q not found", args[0])
				return err
			}
			if err := app.Store.SetActiveProfile(ctx, profile.ID); err != nil {
				output.Error("Failed to switch profile: %v", err)
				return err
			}

			app.Logger.Info().Str("profile", profile.Name).Msg("Active profile switched")
			if output.IsJSON() {
				return output.JSON(map[string]string{"active": profile.ID})
			}
			output.Success("✓ Switched to profile %q", profile.Name)
			return nil
		},
	}
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a profile's full working set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			profile, err := app.resolveProfile(ctx, name)
			if err != nil {
				output.Error("Failed to load profile: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(profile)
			}

			output.Bold("Profile %s", profile.Name)
			output.Printf("  ID:          %s\n", profile.ID)
			output.Printf("  Assets:      %d\n", len(profile.Assets))
			output.Printf("  Liabilities: %d\n", len(profile.Liabilities))
			output.Printf("  Events:      %d\n", len(profile.Events))
			output.Printf("  Tax band:    %s\n", profile.Tax.Band)
			if profile.Goal != nil {
				output.Printf("  Goal:        %s by %s\n",
					output.Currency(profile.Goal.Value), FormatDate(profile.Goal.TargetDate))
			} else {
				output.Printf("  Goal:        none\n")
			}
			return nil
		},
	}
}

func newProfileRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			force, _ := cmd.Flags().GetBool("force")
			profile, err := app.Store.GetProfileByName(ctx, args[0])
			if err != nil {
				output.Error("Profile %q not found", args[0])
				return err
			}
			if !force && len(profile.Assets) > 0 {
				output.Warning("Profile %q has %d assets. Re-run with --force to delete.",
					profile.Name, len(profile.Assets))
				return nil
			}
			if err := app.Store.DeleteProfile(ctx, profile.ID); err != nil {
				output.Error("Failed to delete profile: %v", err)
				return err
			}

			app.Logger.Info().Str("profile", profile.Name).Msg("Profile deleted")
			output.Success("✓ Profile %q deleted", profile.Name)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "delete even if the profile has assets")
	return cmd
}
