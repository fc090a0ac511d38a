package generation

import "eazyhealth/internal/domain"

// basePromptChars reserves room for the instruction template around the
// source text.
const basePromptChars = 2000

// selectWithinBudget admits documents in order while they fit under the
// character budget. An oversized document is skipped rather than aborting,
// so later, shorter documents can still be used.
func selectWithinBudget(docs []domain.SourceDocument, budget int) []domain.SourceDocument {
	if budget <= 0 {
		return docs
	}

	selected := make([]domain.SourceDocument, 0, len(docs))
	total := basePromptChars
	for _, doc := range docs {
		size := len(doc.Text)
		if total+size > budget {
			continue
		}
		selected = append(selected, doc)
		total += size
	}
	return selected
}
