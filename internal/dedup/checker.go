// Package dedup suppresses scheduled briefings that are too similar to
// recently published ones.
package dedup

import (
	"regexp"
	"strings"

	"eazyhealth/internal/domain"
)

const (
	// DefaultLookbackDays is how far back similar briefings count.
	DefaultLookbackDays = 30
	defaultThreshold    = 0.6

	tagWeight   = 0.7
	titleWeight = 0.3
)

var wordExpr = regexp.MustCompile(`\b\w+\b`)

// stopWords are dropped before comparison; "health"/"update"-type words
// would otherwise make every briefing look like every other one.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "up": {}, "about": {}, "into": {}, "through": {}, "during": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {},
	"would": {}, "should": {}, "could": {}, "may": {}, "might": {},
	"health": {}, "update": {}, "news": {}, "briefing": {}, "recent": {},
	"weekly": {}, "new": {},
}

// Checker compares a candidate briefing against recent ones using weighted
// Jaccard similarity over tags and title keywords.
type Checker struct {
	Threshold float64
}

// NewChecker returns a checker with the default similarity threshold.
func NewChecker() *Checker {
	return &Checker{Threshold: defaultThreshold}
}

// IsDuplicate reports whether the candidate is too similar to any of the
// recent briefings.
func (c *Checker) IsDuplicate(title string, tags []string, recent []domain.Briefing) bool {
	newTags := normalizeTags(tags)
	newTitle := extractKeywords(title)

	for _, b := range recent {
		tagSim := jaccard(newTags, normalizeTags(b.Tags))
		titleSim := jaccard(newTitle, extractKeywords(b.Title))

		if tagWeight*tagSim+titleWeight*titleSim >= c.Threshold {
			return true
		}
	}
	return false
}

func normalizeTags(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if t := strings.ToLower(strings.TrimSpace(tag)); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

func extractKeywords(text string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, word := range wordExpr.FindAllString(strings.ToLower(text), -1) {
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
