// Package readinglevel maps reading-level tags to generation constraints.
// The five tiers are totally ordered by increasing complexity:
// grade3 < grade6 < grade8 < high_school < college.
package readinglevel

import (
	"fmt"

	"eazyhealth/internal/domain"
)

// Levels lists all tiers in ascending complexity order.
var Levels = []domain.ReadingLevel{
	domain.LevelGrade3,
	domain.LevelGrade6,
	domain.LevelGrade8,
	domain.LevelHighSchool,
	domain.LevelCollege,
}

// Prompt fragments are editorial policy, not computation. The wording is
// what the generation engine feeds the model verbatim.
var prompts = map[domain.ReadingLevel]string{
	domain.LevelGrade3:     "Use very simple words (3-4 letters), short sentences (5-8 words), and explain every term. Write as if explaining to an 8-year-old.",
	domain.LevelGrade6:     "Use simple language, short sentences (8-12 words), and avoid jargon. Explain medical terms when used. Write at a middle school level.",
	domain.LevelGrade8:     "Use clear, straightforward language with sentences of moderate length. Define technical terms but can use more health vocabulary. Write at an 8th-grade level.",
	domain.LevelHighSchool: "Use standard vocabulary including common medical terminology. Sentences can be longer and more complex. Assume basic health literacy.",
	domain.LevelCollege:    "Use advanced vocabulary and medical terminology freely. Complex sentence structures are acceptable. Assume college-level health knowledge.",
}

// Prompt returns the constraint fragment for a tier. Unknown tags fail;
// they never default.
func Prompt(level domain.ReadingLevel) (string, error) {
	p, ok := prompts[level]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidReadingLevel, level)
	}
	return p, nil
}

// Parse validates a raw tag string into a reading level.
func Parse(tag string) (domain.ReadingLevel, error) {
	level := domain.ReadingLevel(tag)
	if _, ok := prompts[level]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidReadingLevel, tag)
	}
	return level, nil
}
