package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trip-suggester/internal/ai"
	"trip-suggester/internal/report"

	"github.com/spf13/cobra"
)

var (
	briefLanguage string
	briefTitle    string
)

var briefCmd = &cobra.Command{
	Use:   "brief [query...]",
	Short: "Write a Markdown trip brief with an AI summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
			return errors.New("openai.api_key is required (or set TRIP_OPENAI_API_KEY)")
		}
		briefer, err := ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		if err != nil {
			return err
		}
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		lang := briefLanguage
		if lang == "" {
			lang = cfg.OpenAI.Language
		}
		query := strings.Join(args, " ")
		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
		defer cancel()

		items := a.aggregator.Aggregate(ctx, query)
		text, err := briefer.Brief(ctx, query, items, lang)
		if err != nil {
			return fmt.Errorf("brief: %w", err)
		}
		md, err := report.Render(report.Build(briefTitle, query, text, items, time.Now()))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	},
}

func init() {
	briefCmd.Flags().StringVar(&briefLanguage, "language", "", "language of the brief (default: openai.language)")
	briefCmd.Flags().StringVar(&briefTitle, "title", "Istanbul trip brief: {.Query} ({.CurrentDate})", "report title; supports {.Query} and {.CurrentDate}")
	rootCmd.AddCommand(briefCmd)
}
