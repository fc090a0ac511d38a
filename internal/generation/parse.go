package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"eazyhealth/internal/domain"
)

// briefingPayload is the JSON shape requested from the model for briefings.
type briefingPayload struct {
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	BodyMarkdown string   `json:"body_markdown"`
	Tags         []string `json:"tags"`
	// Disclaimer is deliberately ignored: the policy text is injected by
	// the engine regardless of what the model produced.
	Disclaimer string `json:"disclaimer"`
}

type explainerPayload struct {
	Title      string                    `json:"title"`
	Sections   []domain.ExplainerSection `json:"sections"`
	Disclaimer string                    `json:"disclaimer"`
}

// stripFences removes a surrounding markdown code block, with or without a
// json language tag. Models wrap JSON this way often enough that it is the
// first thing to peel off.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	} else {
		return cleaned
	}

	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

// parseExplainer recovers a structured explainer from raw model output.
// Minor deviations (fences, non-JSON prose) degrade to a single-section
// result under the fallback title; an output with no recoverable structure
// at all fails with domain.ErrMalformedOutput.
func parseExplainer(raw, fallbackTitle string) (domain.ExplainerResult, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return domain.ExplainerResult{}, fmt.Errorf("%w: empty model output", domain.ErrMalformedOutput)
	}

	var payload explainerPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		if fallbackTitle == "" {
			return domain.ExplainerResult{}, fmt.Errorf("%w: not JSON and no title to fall back on", domain.ErrMalformedOutput)
		}
		return domain.ExplainerResult{
			Title:    fallbackTitle,
			Sections: []domain.ExplainerSection{{Heading: "Content", Content: cleaned}},
		}, nil
	}

	if payload.Title == "" {
		payload.Title = fallbackTitle
	}
	if payload.Title == "" {
		return domain.ExplainerResult{}, fmt.Errorf("%w: no title", domain.ErrMalformedOutput)
	}
	if len(payload.Sections) == 0 {
		return domain.ExplainerResult{}, fmt.Errorf("%w: no sections", domain.ErrMalformedOutput)
	}

	return domain.ExplainerResult{Title: payload.Title, Sections: payload.Sections}, nil
}

// parseBriefing recovers the briefing payload from raw model output. A
// non-JSON response with usable text becomes a plain markdown body under
// the fallback title.
func parseBriefing(raw, fallbackTitle string) (briefingPayload, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return briefingPayload{}, fmt.Errorf("%w: empty model output", domain.ErrMalformedOutput)
	}

	var payload briefingPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		if fallbackTitle == "" {
			return briefingPayload{}, fmt.Errorf("%w: not JSON and no title to fall back on", domain.ErrMalformedOutput)
		}
		return briefingPayload{Title: fallbackTitle, BodyMarkdown: cleaned}, nil
	}

	if payload.Title == "" {
		payload.Title = fallbackTitle
	}
	if payload.Title == "" {
		return briefingPayload{}, fmt.Errorf("%w: no title", domain.ErrMalformedOutput)
	}
	if payload.BodyMarkdown == "" {
		return briefingPayload{}, fmt.Errorf("%w: no body", domain.ErrMalformedOutput)
	}

	return payload, nil
}
