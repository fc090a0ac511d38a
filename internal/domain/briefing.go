package domain

import "time"

// ReadingLevel is one of five ordered tiers controlling generated-text complexity.
type ReadingLevel string

const (
	LevelGrade3     ReadingLevel = "grade3"
	LevelGrade6     ReadingLevel = "grade6"
	LevelGrade8     ReadingLevel = "grade8"
	LevelHighSchool ReadingLevel = "high_school"
	LevelCollege    ReadingLevel = "college"
)

// SourceType enumerates how a briefing was produced.
type SourceType string

const (
	SourceDataAnalysis   SourceType = "data_analysis"
	SourceArticleSummary SourceType = "article_summary"
)

// Briefing is a persisted, dated piece of generated health content.
// Created exactly once by the generation engine; never mutated afterwards.
type Briefing struct {
	ID           int64
	Title        string
	Slug         string
	Summary      string
	Body         string
	SourceType   SourceType
	SourceURLs   []string
	Tags         []string
	ReadingLevel ReadingLevel
	Disclaimer   string
	CreatedAt    time.Time
}

// ExplainerSection is one heading/content pair in an explainer.
type ExplainerSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// SourceRef points at a source document used as evidentiary basis.
type SourceRef struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
}

// ExplainerResult is an ephemeral, non-persisted structured answer to a
// single on-demand query. It has no identity or storage lifecycle.
type ExplainerResult struct {
	Title      string             `json:"title"`
	Sections   []ExplainerSection `json:"sections"`
	Sources    []SourceRef        `json:"sources"`
	Disclaimer string             `json:"disclaimer"`
}

// SourceDocument carries the extracted text of one source article.
type SourceDocument struct {
	URL   string
	Title string
	Text  string
}

// SearchResult is one candidate returned by a search provider.
type SearchResult struct {
	URL     string
	Title   string
	Snippet string
}

// ScheduleJob is one generation task for a given day, derived purely from
// the calendar date plus the topic cursor.
type ScheduleJob struct {
	ContentType  SourceType
	ReadingLevel ReadingLevel
	Topic        string
}

// ExplainerLog records one on-demand explainer request for analytics.
type ExplainerLog struct {
	ID           string
	Query        string
	SourceURL    string
	InputExcerpt string
	Sources      []SourceRef
	ReadingLevel ReadingLevel
	Output       ExplainerResult
	CreatedAt    time.Time
}
