package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/generation"
	"eazyhealth/internal/infrastructure/extract"
	"eazyhealth/internal/ports"
	"eazyhealth/internal/readinglevel"
)

const (
	defaultExplainerLevel = domain.LevelGrade6
	sourceExcerptChars    = 300
	logExcerptChars       = 500
)

// ErrNoInput means an explain request carried neither query, url, nor raw
// text.
var ErrNoInput = errors.New("one of query, url, or raw_text is required")

// ExplainRequest is one on-demand explainer request. Exactly one input mode
// is used, in raw-text, url, query precedence.
type ExplainRequest struct {
	Query        string
	URL          string
	RawText      string
	ReadingLevel string
}

// ExplainerService produces ephemeral explainers and logs each request.
type ExplainerService struct {
	resolver *SourceResolver
	engine   *generation.Engine
	repo     ports.BriefingRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewExplainerService wires the resolver, engine, and request log.
func NewExplainerService(resolver *SourceResolver, engine *generation.Engine, repo ports.BriefingRepository, logger *slog.Logger) *ExplainerService {
	return &ExplainerService{
		resolver: resolver,
		engine:   engine,
		repo:     repo,
		logger:   logger,
		now:      time.Now,
	}
}

// Explain resolves sources for the request, generates a sectioned answer at
// the target reading level, and records the request. The result is returned
// to the caller and never persisted as a briefing.
func (s *ExplainerService) Explain(ctx context.Context, req ExplainRequest) (domain.ExplainerResult, error) {
	level := defaultExplainerLevel
	if req.ReadingLevel != "" {
		parsed, err := readinglevel.Parse(req.ReadingLevel)
		if err != nil {
			return domain.ExplainerResult{}, err
		}
		level = parsed
	}

	docs, topicHint, err := s.gather(ctx, req)
	if err != nil {
		return domain.ExplainerResult{}, err
	}

	result, err := s.engine.Explainer(ctx, docs, topicHint, level)
	if err != nil {
		return domain.ExplainerResult{}, err
	}
	result.Sources = sourceRefs(docs, req.RawText != "")

	s.logRequest(ctx, req, level, docs, result)
	return result, nil
}

// gather resolves the request's input mode into source documents.
func (s *ExplainerService) gather(ctx context.Context, req ExplainRequest) ([]domain.SourceDocument, string, error) {
	switch {
	case req.RawText != "":
		doc := domain.SourceDocument{Title: "Provided text", Text: req.RawText}
		return []domain.SourceDocument{doc}, req.Query, nil
	case req.URL != "":
		doc, err := s.resolver.ResolveURL(ctx, req.URL)
		if err != nil {
			return nil, "", err
		}
		return []domain.SourceDocument{doc}, doc.Title, nil
	case req.Query != "":
		docs, err := s.resolver.ResolveQuery(ctx, req.Query)
		if err != nil {
			return nil, "", err
		}
		return docs, req.Query, nil
	default:
		return nil, "", ErrNoInput
	}
}

// logRequest is best-effort: a failed insert never fails the request.
func (s *ExplainerService) logRequest(ctx context.Context, req ExplainRequest, level domain.ReadingLevel, docs []domain.SourceDocument, result domain.ExplainerResult) {
	var excerpt string
	if req.RawText != "" {
		excerpt = extract.Excerpt(req.RawText, logExcerptChars)
	} else if len(docs) > 0 {
		excerpt = extract.Excerpt(docs[0].Text, logExcerptChars)
	}

	entry := domain.ExplainerLog{
		ID:           uuid.NewString(),
		Query:        req.Query,
		SourceURL:    req.URL,
		InputExcerpt: excerpt,
		Sources:      result.Sources,
		ReadingLevel: level,
		Output:       result,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.SaveExplainerLog(ctx, entry); err != nil {
		s.logger.Warn("explainer log insert failed", "error", err)
	}
}

func sourceRefs(docs []domain.SourceDocument, rawText bool) []domain.SourceRef {
	if rawText {
		return nil
	}
	refs := make([]domain.SourceRef, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, domain.SourceRef{
			URL:     doc.URL,
			Title:   doc.Title,
			Excerpt: extract.Excerpt(doc.Text, sourceExcerptChars),
		})
	}
	return refs
}
