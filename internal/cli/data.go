// Package cli provides the command-line interface for the wealth tracker.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	apperrors "networth-cli/internal/errors"
	"networth-cli/internal/impexp"
	"networth-cli/internal/logging"
)

// addImportExportCommands adds the export and import commands.
func addImportExportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export all profiles to a file",
		Long: `Export every profile, including assets, liabilities, events, tax settings
and goals, plus the active profile marker, as a JSON document. With
--encrypt the document is sealed with AES-256-GCM under a password-derived
key.`,
		Example: `  networth export backup.json
  networth export backup.networth --encrypt --password s3cret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			infos, err := app.Store.ListProfiles(ctx)
			if err != nil {
				output.Error("Failed to list profiles: %v", err)
				return err
			}

			doc := &impexp.Document{}
			for _, info := range infos {
				profile, err := app.Store.GetProfile(ctx, info.ID)
				if err != nil {
					output.Error("Failed to load profile %q: %v", info.Name, err)
					return err
				}
				doc.Profiles = append(doc.Profiles, *profile)
				if info.Active {
					doc.ActiveProfileID = info.ID
				}
			}

			encrypt, _ := cmd.Flags().GetBool("encrypt")
			password, _ := cmd.Flags().GetString("password")

			var data []byte
			if encrypt {
				if password == "" {
					output.Error("--encrypt requires --password")
					return apperrors.ErrInputValidation
				}
				data, err = impexp.ExportEncrypted(doc, password)
			} else {
				data, err = impexp.Export(doc)
			}
			if err != nil {
				output.Error("Export failed: %v", err)
				return err
			}

			if err := os.WriteFile(args[0], data, 0600); err != nil {
				output.Error("Failed to write %s: %v", args[0], err)
				return err
			}

			app.Logger.Info().Int("profiles", len(doc.Profiles)).Bool("encrypted", encrypt).Msg("Export written")
			output.Success("✓ Exported %d profiles to %s", len(doc.Profiles), args[0])
			return nil
		},
	}
	cmd.Flags().Bool("encrypt", false, "encrypt the export")
	cmd.Flags().String("password", "", "password for --encrypt")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import profiles from an export file",
		Long: `Import a previously exported document. Profiles are upserted by id; the
document's active profile marker is honored when present. Encrypted
exports require the password they were sealed with.`,
		Example: `  networth import backup.json
  networth import backup.networth --password s3cret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.newOutput(cmd)
			ctx, cancel := cmdContext()
			defer cancel()

			data, err := os.ReadFile(args[0])
			if err != nil {
				output.Error("Failed to read %s: %v", args[0], err)
				return err
			}

			password, _ := cmd.Flags().GetString("password")
			encrypted := impexp.IsEncrypted(data)
			if encrypted && password == "" {
				output.Error("File is encrypted; supply --password")
				return apperrors.ErrDecryptFailed
			}

			doc, err := impexp.Import(data, password)
			imported := 0
			if doc != nil {
				imported = len(doc.Profiles)
			}
			logging.LogImport(app.Logger, imported, encrypted, err)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrDecryptFailed) {
					output.Error("Decryption failed: wrong password or corrupted file")
				} else {
					output.Error("Import failed: %v", err)
				}
				return err
			}

			for i := range doc.Profiles {
				if err := app.Store.SaveProfile(ctx, &doc.Profiles[i]); err != nil {
					output.Error("Failed to save profile %q: %v", doc.Profiles[i].Name, err)
					return err
				}
			}
			if doc.ActiveProfileID != "" {
				if err := app.Store.SetActiveProfile(ctx, doc.ActiveProfileID); err != nil {
					output.Warning("Imported, but could not restore active profile: %v", err)
				}
			}

			output.Success("✓ Imported %d profiles from %s", len(doc.Profiles), args[0])
			return nil
		},
	}
	cmd.Flags().String("password", "", "password for encrypted files")
	return cmd
}
