package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ramsu24/D-Solar-sub001/internal/knowledge"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import FAQs and packages from a seed file",
		Long: `Import FAQs and packages from a seed file.

Existing entries with the same id or code are overwritten; nothing is deleted.
The file defaults to knowledge.seed_file from the config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if file == "" {
				file = cfg.Knowledge.SeedFile
			}
			if file == "" {
				return fmt.Errorf("no seed file: pass --file or set knowledge.seed_file")
			}

			seed, err := knowledge.LoadSeedFile(file)
			if err != nil {
				return err
			}

			cfg.Knowledge.SeedOnBoot = false
			a, err := openApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			ui := NewUI(cmd.OutOrStdout(), outputJSON)
			bar := ui.ProgressBar(len(seed.FAQs)+len(seed.Packages), "Importing")
			res, err := a.ImportSeed(ctx, seed, bar)
			if err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"file":     file,
					"faqs":     res.FAQs,
					"packages": res.Packages,
				})
			}
			ui.Success("Imported %d FAQs and %d packages from %s", res.FAQs, res.Packages, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file path")
	return cmd
}
