package domain

import "errors"

// Error taxonomy surfaced to the API layer. All values are sentinel errors
// meant to be wrapped with context and matched via errors.Is.
var (
	// ErrInvalidReadingLevel signals an unknown reading-level tag. Unknown
	// tags never silently default: that would serve mismatched content
	// under a mislabeled tier.
	ErrInvalidReadingLevel = errors.New("invalid reading level")

	// ErrNoTrustedSources means a search yielded zero allowlisted results.
	// Callers must not fabricate content when sources are absent.
	ErrNoTrustedSources = errors.New("no trusted sources found")

	// ErrExtractionFailed means a page yielded no extractable body text.
	ErrExtractionFailed = errors.New("article extraction failed")

	// ErrGenerationFailed wraps LLM provider errors. No automatic retries.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrMalformedOutput means the model output structure could not be
	// recovered at all (empty output, no title).
	ErrMalformedOutput = errors.New("malformed generation output")

	// ErrSlugCollision is a defined, expected outcome of Create: the caller
	// skips the briefing, never retries with a mutated slug.
	ErrSlugCollision = errors.New("slug already exists")

	// ErrNotFound is returned by lookups for absent records.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateTopic means a scheduled briefing was suppressed because a
	// similar one was published within the lookback window.
	ErrDuplicateTopic = errors.New("duplicate topic suppressed")
)
