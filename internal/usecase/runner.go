package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/ports"
	"eazyhealth/internal/schedule"
)

// Runner executes the day's scheduled generation jobs sequentially. One
// failed job never aborts the batch; slug collisions and duplicate hits are
// expected outcomes, not batch errors.
type Runner struct {
	briefings *BriefingService
	cursor    ports.CursorStore
	logger    *slog.Logger
}

// NewRunner wires the briefing service and the persisted topic cursor.
func NewRunner(briefings *BriefingService, cursor ports.CursorStore, logger *slog.Logger) *Runner {
	return &Runner{briefings: briefings, cursor: cursor, logger: logger}
}

// RunDate runs the batch for the given calendar date and advances the topic
// cursor. Only cursor persistence failures surface as errors.
func (r *Runner) RunDate(ctx context.Context, date time.Time) error {
	position, err := r.cursor.Load(ctx)
	if err != nil {
		return fmt.Errorf("load topic cursor: %w", err)
	}

	jobs, next := schedule.JobsForDate(date, position)
	r.logger.Info("daily batch starting",
		"date", date.Format("2006-01-02"),
		"jobs", len(jobs),
		"cursor", position)

	for _, job := range jobs {
		r.runJob(ctx, job)
	}

	if next != position {
		if err := r.cursor.Store(ctx, next); err != nil {
			return fmt.Errorf("store topic cursor: %w", err)
		}
	}
	return nil
}

func (r *Runner) runJob(ctx context.Context, job domain.ScheduleJob) {
	req := GenerateRequest{
		SourceType:   job.ContentType,
		Topic:        job.Topic,
		ReadingLevel: job.ReadingLevel,
		UseMockData:  job.ContentType == domain.SourceDataAnalysis,
		Scheduled:    true,
	}

	briefing, err := r.briefings.Generate(ctx, req)
	switch {
	case errors.Is(err, domain.ErrSlugCollision):
		r.logger.Info("job skipped, slug already exists", "topic", job.Topic, "error", err)
	case errors.Is(err, domain.ErrDuplicateTopic):
		r.logger.Info("job skipped, duplicate of recent briefing", "topic", job.Topic, "error", err)
	case err != nil:
		r.logger.Error("job failed",
			"content_type", job.ContentType,
			"topic", job.Topic,
			"error", err)
	default:
		r.logger.Info("job completed", "slug", briefing.Slug, "content_type", job.ContentType)
	}
}
