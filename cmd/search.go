package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"trip-suggester/internal/aggregate"
	"trip-suggester/internal/model"
	"trip-suggester/internal/report"

	"github.com/spf13/cobra"
)

var (
	searchCategory     string
	searchNeighborhood string
	searchFormat       string
	searchDetailed     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search all sources and print suggestions",
	Long:  "Search all sources and print suggestions. Without a query the curated set is shown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchCategory != "" && searchCategory != "all" && !model.Category(searchCategory).Valid() {
			return fmt.Errorf("unknown category %q", searchCategory)
		}
		a, err := newApp(GetConfig())
		if err != nil {
			return err
		}
		defer a.Close()

		query := strings.Join(args, " ")
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		out := cmd.OutOrStdout()

		if searchDetailed {
			return printSources(out, a.aggregator.Detailed(ctx, query))
		}
		items := aggregate.Filter(a.aggregator.Aggregate(ctx, query), searchCategory, searchNeighborhood)
		return printSuggestions(out, searchFormat, query, items)
	},
}

func printSuggestions(w io.Writer, format, query string, items []model.Suggestion) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if items == nil {
			items = []model.Suggestion{}
		}
		return enc.Encode(items)
	case "markdown", "md":
		md, err := report.Render(report.Build("Trip suggestions: {.Query}", query, "", items, time.Now()))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, md)
		return err
	case "", "text":
		for _, s := range items {
			hood := s.Neighborhood
			if hood == "" {
				hood = "-"
			}
			fmt.Fprintf(w, "[%s] %s (%s, %s)\n", s.Source, s.Title, s.Category, hood)
			if s.SourceURL != "" {
				fmt.Fprintf(w, "    %s\n", s.SourceURL)
			}
		}
		fmt.Fprintf(w, "%d suggestions\n", len(items))
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printSources(w io.Writer, results []model.SourceResult) error {
	for _, r := range results {
		line := fmt.Sprintf("%-10s %-7s %3d", r.Source, r.Status, len(r.Suggestions))
		if r.Cached {
			line += " cached"
		}
		if reason := r.Reason(); reason != "" {
			line += " " + reason
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func init() {
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "only show this category (or all)")
	searchCmd.Flags().StringVar(&searchNeighborhood, "neighborhood", "", "only show this neighborhood (or all)")
	searchCmd.Flags().StringVar(&searchFormat, "format", "text", "output format: text, json or markdown")
	searchCmd.Flags().BoolVar(&searchDetailed, "detailed", false, "print per-source status instead of suggestions")
	rootCmd.AddCommand(searchCmd)
}
