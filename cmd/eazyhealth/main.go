package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eazyhealth/internal/app"
	"eazyhealth/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:   "eazyhealth",
		Short: "Reading-level-targeted health briefing service",
		Long: "eazyhealth generates health explainers and daily briefings at " +
			"configurable reading levels, backed by trusted medical sources.",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), scheduleCmd(), generateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	a, err := app.New(ctx, config.Load())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily cron scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return a.Serve(ctx)
			})
		},
	}
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run today's scheduled generation batch once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return a.RunSchedule(ctx)
			})
		},
	}
}

func generateCmd() *cobra.Command {
	var (
		sourceType string
		topic      string
		level      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one briefing on demand and print its slug",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				slug, err := a.GenerateOne(ctx, sourceType, topic, level)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), slug)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sourceType, "type", "article_summary", "source type: data_analysis or article_summary")
	cmd.Flags().StringVar(&topic, "topic", "", "topic for article summaries")
	cmd.Flags().StringVar(&level, "level", "", "reading level: grade3, grade6, grade8, high_school, college")

	return cmd
}
