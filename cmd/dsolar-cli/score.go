package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Ramsu24/D-Solar-sub001/internal/chat"
)

// ScoreReport explains how the chat pipeline sees a query.
type ScoreReport struct {
	Query      string          `json:"query"`
	Normalized string          `json:"normalized"`
	Vetoed     bool            `json:"vetoed"`
	Complexity chat.Complexity `json:"complexity"`
	Intent     chat.Intent     `json:"intent"`
	Confidence float64         `json:"confidence"`
	PackageRef string          `json:"packageRef"`
	Candidates []ScoredFAQ     `json:"candidates"`
}

// ScoredFAQ carries both scoring schemes for one FAQ.
type ScoredFAQ struct {
	ID         string `json:"id"`
	Question   string `json:"question"`
	PerKeyword int    `json:"perKeyword"`
	Flat       int    `json:"flat"`
}

func newScoreCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "score <query>",
		Short: "Show how a query scores against the FAQ knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			faqs, err := a.Knowledge.ListFAQs(ctx)
			if err != nil {
				return err
			}

			q := strings.Join(args, " ")
			intent, confidence := chat.ClassifyIntent(q)
			report := ScoreReport{
				Query:      q,
				Normalized: chat.Normalize(q),
				Vetoed:     chat.Vetoed(q),
				Complexity: chat.AnalyzeComplexity(q),
				Intent:     intent,
				Confidence: confidence,
				PackageRef: chat.ExtractPackageRef(q).Kind.String(),
				Candidates: []ScoredFAQ{},
			}

			for _, c := range chat.Rank(q, faqs, chat.PerKeyword) {
				if c.Score == 0 {
					break
				}
				if top > 0 && len(report.Candidates) >= top {
					break
				}
				report.Candidates = append(report.Candidates, ScoredFAQ{
					ID:         c.FAQ.ID,
					Question:   c.FAQ.Question,
					PerKeyword: c.Score,
					Flat:       chat.Score(q, c.FAQ, chat.FlatKeyword),
				})
			}

			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printScoreReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "number of candidates to show (0 for all)")
	return cmd
}

func printScoreReport(cmd *cobra.Command, r ScoreReport) {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	bold.Fprintf(out, "Query: %s\n", r.Query)
	fmt.Fprintf(out, "  normalized:  %s\n", r.Normalized)
	fmt.Fprintf(out, "  intent:      %s (%.2f)\n", r.Intent, r.Confidence)
	fmt.Fprintf(out, "  complex:     %t %s\n", r.Complexity.Complex, strings.Join(r.Complexity.Reasons, ","))
	fmt.Fprintf(out, "  package ref: %s\n", r.PackageRef)
	if r.Vetoed {
		color.New(color.FgYellow).Fprintln(out, "  vetoed: installation of non-solar items")
	}

	if len(r.Candidates) == 0 {
		fmt.Fprintln(out, "\nNo FAQ scored above zero.")
		return
	}
	fmt.Fprintf(out, "\n%-6s %-6s %-28s %s\n", "PER", "FLAT", "ID", "QUESTION")
	for _, c := range r.Candidates {
		fmt.Fprintf(out, "%-6d %-6d %-28s %s\n", c.PerKeyword, c.Flat, c.ID, c.Question)
	}
}
