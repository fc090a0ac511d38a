package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eazyhealth/internal/dedup"
	"eazyhealth/internal/domain"
	"eazyhealth/internal/generation"
	"eazyhealth/internal/ports"
)

const defaultBriefingLevel = domain.LevelGrade8

// surveillanceDatasetURL is the evidentiary reference for data-analysis
// briefings, which are derived from a dataset rather than articles.
const surveillanceDatasetURL = "https://www.cdc.gov/surveillance/index.html"

// GenerateRequest is one briefing-generation request, interactive or
// scheduled.
type GenerateRequest struct {
	SourceType   domain.SourceType
	Topic        string
	ReadingLevel domain.ReadingLevel
	UseMockData  bool
	Stats        map[string]any
	// Scheduled enables duplicate suppression; interactive requests bypass it.
	Scheduled bool
}

// BriefingService generates and persists briefings.
type BriefingService struct {
	resolver *SourceResolver
	engine   *generation.Engine
	repo     ports.BriefingRepository
	checker  *dedup.Checker
	logger   *slog.Logger
	now      func() time.Time
}

// NewBriefingService wires the resolver, engine, store, and duplicate checker.
func NewBriefingService(resolver *SourceResolver, engine *generation.Engine, repo ports.BriefingRepository, checker *dedup.Checker, logger *slog.Logger) *BriefingService {
	return &BriefingService{
		resolver: resolver,
		engine:   engine,
		repo:     repo,
		checker:  checker,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate produces one briefing and persists it. Article summaries resolve
// their sources first; when nothing trusted resolves, no content is
// generated. Scheduled runs additionally suppress near-duplicate articles.
func (s *BriefingService) Generate(ctx context.Context, req GenerateRequest) (domain.Briefing, error) {
	if req.ReadingLevel == "" {
		req.ReadingLevel = defaultBriefingLevel
	}

	input := generation.BriefingInput{
		SourceType:   req.SourceType,
		Topic:        req.Topic,
		ReadingLevel: req.ReadingLevel,
	}

	switch req.SourceType {
	case domain.SourceArticleSummary:
		if req.Topic == "" {
			return domain.Briefing{}, fmt.Errorf("topic is required for article summaries")
		}
		docs, err := s.resolver.ResolveQuery(ctx, req.Topic)
		if err != nil {
			return domain.Briefing{}, err
		}
		input.Documents = docs
	case domain.SourceDataAnalysis:
		stats := req.Stats
		if len(stats) == 0 || req.UseMockData {
			stats = MockSurveillanceStats()
		}
		input.Stats = stats
		input.SourceURLs = []string{surveillanceDatasetURL}
	default:
		return domain.Briefing{}, fmt.Errorf("unknown source type %q", req.SourceType)
	}

	briefing, err := s.engine.Briefing(ctx, input)
	if err != nil {
		return domain.Briefing{}, err
	}

	if req.Scheduled && req.SourceType == domain.SourceArticleSummary {
		if err := s.checkDuplicate(ctx, briefing); err != nil {
			return domain.Briefing{}, err
		}
	}

	stored, err := s.repo.Create(ctx, briefing)
	if err != nil {
		return domain.Briefing{}, err
	}

	s.logger.Info("briefing created",
		"slug", stored.Slug,
		"source_type", stored.SourceType,
		"reading_level", stored.ReadingLevel)
	return stored, nil
}

// List returns one page of briefings plus the total matching count.
func (s *BriefingService) List(ctx context.Context, filter ports.ListFilter) ([]domain.Briefing, int, error) {
	return s.repo.List(ctx, filter)
}

// GetBySlug fetches one briefing or domain.ErrNotFound.
func (s *BriefingService) GetBySlug(ctx context.Context, slug string) (domain.Briefing, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *BriefingService) checkDuplicate(ctx context.Context, candidate domain.Briefing) error {
	since := s.now().UTC().AddDate(0, 0, -dedup.DefaultLookbackDays)
	recent, err := s.repo.ListRecent(ctx, since, candidate.SourceType)
	if err != nil {
		return fmt.Errorf("list recent briefings: %w", err)
	}

	if s.checker.IsDuplicate(candidate.Title, candidate.Tags, recent) {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateTopic, candidate.Title)
	}
	return nil
}

// MockSurveillanceStats is the fixed development dataset used when no real
// disease statistics are supplied.
func MockSurveillanceStats() map[string]any {
	return map[string]any{
		"period": "last_7_days",
		"region": "national",
		"conditions": []map[string]any{
			{"name": "COVID-19", "trend": "rising", "change_percent": 8, "weekly_cases": 24500},
			{"name": "Influenza", "trend": "falling", "change_percent": -3, "weekly_cases": 9800},
			{"name": "RSV", "trend": "rising", "change_percent": 15, "weekly_cases": 4100},
		},
	}
}
