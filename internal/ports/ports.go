package ports

import (
	"context"
	"time"

	"eazyhealth/internal/domain"
)

// LLMProvider completes prompts against a configured model. OpenAI and
// Anthropic are interchangeable strategies behind this interface; model,
// temperature, and token limits are bound at construction.
type LLMProvider interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// SearchProvider finds candidate source articles for a query.
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

// Extractor fetches a URL and extracts its main textual content.
type Extractor interface {
	Extract(ctx context.Context, url string) (domain.SourceDocument, error)
}

// ListFilter narrows and pages a briefing listing.
type ListFilter struct {
	SourceType domain.SourceType // empty = all
	Limit      int
	Offset     int
}

// BriefingRepository persists briefings and explainer request logs.
type BriefingRepository interface {
	// Create inserts atomically and returns the stored briefing with its
	// assigned ID and timestamp. A slug conflict yields domain.ErrSlugCollision.
	Create(ctx context.Context, b domain.Briefing) (domain.Briefing, error)
	// List returns one page ordered by created_at descending, plus the
	// total matching count.
	List(ctx context.Context, filter ListFilter) ([]domain.Briefing, int, error)
	GetBySlug(ctx context.Context, slug string) (domain.Briefing, error)
	// ListRecent returns briefings of the given type created at or after
	// since, for duplicate suppression.
	ListRecent(ctx context.Context, since time.Time, sourceType domain.SourceType) ([]domain.Briefing, error)
	SaveExplainerLog(ctx context.Context, entry domain.ExplainerLog) error
}

// CursorStore persists the scheduler's topic cursor so restarts do not
// repeat the same topic.
type CursorStore interface {
	Load(ctx context.Context) (int, error)
	Store(ctx context.Context, position int) error
}

// Scheduler controls when the daily batch executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
