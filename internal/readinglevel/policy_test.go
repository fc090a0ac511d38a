package readinglevel

import (
	"errors"
	"testing"

	"eazyhealth/internal/domain"
)

func TestPromptDistinctPerLevel(t *testing.T) {
	t.Parallel()

	seen := map[string]domain.ReadingLevel{}
	for _, level := range Levels {
		p, err := Prompt(level)
		if err != nil {
			t.Fatalf("Prompt(%s) returned error: %v", level, err)
		}
		if p == "" {
			t.Fatalf("Prompt(%s) is empty", level)
		}
		if prev, ok := seen[p]; ok {
			t.Fatalf("levels %s and %s share the same prompt", prev, level)
		}
		seen[p] = level
	}

	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct prompts, got %d", len(seen))
	}
}

func TestPromptUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := Prompt(domain.ReadingLevel("grade12")); !errors.Is(err, domain.ErrInvalidReadingLevel) {
		t.Fatalf("expected ErrInvalidReadingLevel, got %v", err)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	level, err := Parse("high_school")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if level != domain.LevelHighSchool {
		t.Fatalf("unexpected level: %s", level)
	}

	if _, err := Parse("phd"); !errors.Is(err, domain.ErrInvalidReadingLevel) {
		t.Fatalf("expected ErrInvalidReadingLevel, got %v", err)
	}

	if _, err := Parse(""); !errors.Is(err, domain.ErrInvalidReadingLevel) {
		t.Fatalf("expected ErrInvalidReadingLevel for empty tag, got %v", err)
	}
}
