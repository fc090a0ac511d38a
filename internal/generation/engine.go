// Package generation assembles prompts, invokes the configured LLM
// provider, and parses model output into explainers and briefings.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/ports"
	"eazyhealth/internal/readinglevel"
)

// Engine turns resolved sources into structured content at a target
// reading level. The disclaimer is injected by policy on every result; it
// is never sourced from the model.
type Engine struct {
	provider   ports.LLMProvider
	disclaimer string
	budget     int
	logger     *slog.Logger
	now        func() time.Time
}

// NewEngine wires the completion provider and content policy.
func NewEngine(provider ports.LLMProvider, disclaimer string, budget int, logger *slog.Logger) *Engine {
	return &Engine{
		provider:   provider,
		disclaimer: disclaimer,
		budget:     budget,
		logger:     logger,
		now:        time.Now,
	}
}

// BriefingInput carries everything needed to generate one briefing.
type BriefingInput struct {
	SourceType   domain.SourceType
	Topic        string
	Documents    []domain.SourceDocument
	Stats        map[string]any
	// SourceURLs overrides the evidentiary URLs when they do not come from
	// Documents (data-analysis briefings reference their dataset).
	SourceURLs   []string
	ReadingLevel domain.ReadingLevel
}

// Explainer generates an ephemeral sectioned answer from source documents.
func (e *Engine) Explainer(ctx context.Context, docs []domain.SourceDocument, topicHint string, level domain.ReadingLevel) (domain.ExplainerResult, error) {
	levelPrompt, err := readinglevel.Prompt(level)
	if err != nil {
		return domain.ExplainerResult{}, err
	}

	if topicHint == "" {
		topicHint = "General health information"
	}

	prompt := buildExplainerPrompt(e.fit(docs), topicHint, levelPrompt)

	raw, err := e.provider.Complete(ctx, explainerSystem, prompt)
	if err != nil {
		return domain.ExplainerResult{}, fmt.Errorf("%w: %s: %v", domain.ErrGenerationFailed, e.provider.Name(), err)
	}

	result, err := parseExplainer(raw, topicHint)
	if err != nil {
		return domain.ExplainerResult{}, err
	}

	result.Disclaimer = e.disclaimer
	return result, nil
}

// Briefing generates a persistable briefing. The returned value has no ID;
// the store assigns identity on create.
func (e *Engine) Briefing(ctx context.Context, in BriefingInput) (domain.Briefing, error) {
	levelPrompt, err := readinglevel.Prompt(in.ReadingLevel)
	if err != nil {
		return domain.Briefing{}, err
	}

	var (
		system        string
		prompt        string
		fallbackTitle string
	)
	switch in.SourceType {
	case domain.SourceDataAnalysis:
		system = analysisSystem
		prompt = buildAnalysisPrompt(in.Stats, levelPrompt)
		fallbackTitle = "Weekly Health Briefing"
	case domain.SourceArticleSummary:
		system = summarySystem
		prompt = buildSummaryPrompt(e.fit(in.Documents), in.Topic, levelPrompt)
		fallbackTitle = fmt.Sprintf("Health News: %s", in.Topic)
	default:
		return domain.Briefing{}, fmt.Errorf("unknown source type %q", in.SourceType)
	}

	raw, err := e.provider.Complete(ctx, system, prompt)
	if err != nil {
		return domain.Briefing{}, fmt.Errorf("%w: %s: %v", domain.ErrGenerationFailed, e.provider.Name(), err)
	}

	payload, err := parseBriefing(raw, fallbackTitle)
	if err != nil {
		return domain.Briefing{}, err
	}

	sourceURLs := in.SourceURLs
	if len(sourceURLs) == 0 {
		sourceURLs = make([]string, 0, len(in.Documents))
		for _, doc := range in.Documents {
			sourceURLs = append(sourceURLs, doc.URL)
		}
	}

	created := e.now().UTC()
	return domain.Briefing{
		Title:        payload.Title,
		Slug:         datedSlug(payload.Title, created),
		Summary:      payload.Summary,
		Body:         payload.BodyMarkdown,
		SourceType:   in.SourceType,
		SourceURLs:   sourceURLs,
		Tags:         payload.Tags,
		ReadingLevel: in.ReadingLevel,
		Disclaimer:   e.disclaimer,
		CreatedAt:    created,
	}, nil
}

// fit applies the character budget. If nothing fits, the first document is
// truncated instead of sending an empty prompt.
func (e *Engine) fit(docs []domain.SourceDocument) []domain.SourceDocument {
	selected := selectWithinBudget(docs, e.budget)
	if len(selected) > 0 || len(docs) == 0 {
		if dropped := len(docs) - len(selected); dropped > 0 && e.logger != nil {
			e.logger.Debug("dropped sources over budget", "dropped", dropped, "kept", len(selected))
		}
		return selected
	}

	first := docs[0]
	limit := e.budget - basePromptChars
	if limit > 0 && len(first.Text) > limit {
		first.Text = first.Text[:limit]
	}
	if e.logger != nil {
		e.logger.Debug("truncated oversized source", "url", first.URL, "chars", len(first.Text))
	}
	return []domain.SourceDocument{first}
}
