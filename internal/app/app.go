// Package app wires configuration, infrastructure, and services into the
// runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"eazyhealth/internal/config"
	"eazyhealth/internal/dedup"
	"eazyhealth/internal/domain"
	"eazyhealth/internal/generation"
	"eazyhealth/internal/infrastructure/extract"
	"eazyhealth/internal/infrastructure/httpapi"
	"eazyhealth/internal/infrastructure/llm"
	"eazyhealth/internal/infrastructure/scheduler"
	"eazyhealth/internal/infrastructure/search"
	"eazyhealth/internal/infrastructure/storage"
	"eazyhealth/internal/logging"
	"eazyhealth/internal/readinglevel"
	"eazyhealth/internal/usecase"
)

const shutdownTimeout = 15 * time.Second

// App is the composed application.
type App struct {
	cfg       config.Config
	logger    *slog.Logger
	repo      *storage.PostgresRepository
	explainer *usecase.ExplainerService
	briefings *usecase.BriefingService
	runner    *usecase.Runner
	close     func()
}

// New builds the application from configuration. The caller must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.New(cfg.Logging.Level)

	db, err := storage.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	repo := storage.NewPostgresRepository(db)
	if err := repo.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	provider, err := llm.New(cfg.LLM)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	searcher, err := search.New(cfg.Search)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	resolver := usecase.NewSourceResolver(
		searcher,
		extract.NewExtractor(nil),
		cfg.Content.TrustedDomainList(),
		cfg.Search.MaxResults,
		logging.Component(logger, "resolver"),
	)
	engine := generation.NewEngine(
		provider,
		cfg.Content.Disclaimer,
		cfg.Content.SourceCharBudget,
		logging.Component(logger, "generation"),
	)

	explainer := usecase.NewExplainerService(resolver, engine, repo, logging.Component(logger, "explainer"))
	briefings := usecase.NewBriefingService(resolver, engine, repo, dedup.NewChecker(), logging.Component(logger, "briefings"))
	runner := usecase.NewRunner(briefings, repo, logging.Component(logger, "runner"))

	logger.Info("application wired",
		"llm_provider", provider.Name(),
		"search_provider", searcher.Name())

	return &App{
		cfg:       cfg,
		logger:    logger,
		repo:      repo,
		explainer: explainer,
		briefings: briefings,
		runner:    runner,
		close:     func() { _ = db.Close() },
	}, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

// Serve runs the HTTP API and the cron scheduler until SIGINT/SIGTERM.
func (a *App) Serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cron := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	if err := cron.Start(ctx, func(fireTime time.Time) {
		if err := a.runner.RunDate(context.Background(), fireTime); err != nil {
			a.logger.Error("scheduled batch failed", "error", err)
		}
	}); err != nil {
		return err
	}

	server := httpapi.NewServer(a.cfg.HTTP.Addr, a.explainer, a.briefings, logging.Component(a.logger, "http"))

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.ListenAndServe() }()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := cron.Stop(shutdownCtx); err != nil {
		a.logger.Warn("scheduler stop", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// RunSchedule executes one daily batch for the current date and exits.
func (a *App) RunSchedule(ctx context.Context) error {
	return a.runner.RunDate(ctx, time.Now().In(a.cfg.Scheduler.Location()))
}

// GenerateOne produces a single briefing on demand and returns its slug.
func (a *App) GenerateOne(ctx context.Context, sourceType, topic, level string) (string, error) {
	var parsedLevel domain.ReadingLevel
	if level != "" {
		parsed, err := readinglevel.Parse(level)
		if err != nil {
			return "", err
		}
		parsedLevel = parsed
	}

	var st domain.SourceType
	switch sourceType {
	case string(domain.SourceDataAnalysis):
		st = domain.SourceDataAnalysis
	case string(domain.SourceArticleSummary):
		st = domain.SourceArticleSummary
	default:
		return "", fmt.Errorf("source type must be %s or %s", domain.SourceDataAnalysis, domain.SourceArticleSummary)
	}

	briefing, err := a.briefings.Generate(ctx, usecase.GenerateRequest{
		SourceType:   st,
		Topic:        topic,
		ReadingLevel: parsedLevel,
		UseMockData:  st == domain.SourceDataAnalysis,
	})
	if err != nil {
		return "", err
	}
	return briefing.Slug, nil
}
