package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Ramsu24/D-Solar-sub001/internal/chat"
)

func newFAQsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faqs",
		Short: "List knowledge base FAQs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			faqs, err := a.Store.ListFAQs(ctx)
			if err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"faqs":  faqs,
					"count": len(faqs),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d FAQs\n\n", len(faqs))
			for _, f := range faqs {
				fmt.Fprintf(out, "%-28s %s\n", f.ID, f.Question)
				fmt.Fprintf(out, "%-28s keywords: %s\n", "", strings.Join(f.Keywords, ", "))
				if !f.UpdatedAt.IsZero() {
					fmt.Fprintf(out, "%-28s updated %s\n", "", humanize.Time(f.UpdatedAt))
				}
			}
			return nil
		},
	}
}

func newPackagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List solar packages with prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			pkgs, err := a.Store.ListPackages(ctx)
			if err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"packages": pkgs,
					"count":    len(pkgs),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d packages\n\n", len(pkgs))
			fmt.Fprint(out, chat.FormatCatalog(pkgs))
			return nil
		},
	}
}
