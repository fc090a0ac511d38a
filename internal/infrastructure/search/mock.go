package search

import (
	"context"
	"fmt"
	"strings"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/ports"
)

// MockProvider serves curated results for development and tests without
// touching the network.
type MockProvider struct{}

var _ ports.SearchProvider = (*MockProvider)(nil)

// NewMockProvider returns the offline strategy.
func NewMockProvider() *MockProvider { return &MockProvider{} }

// Name identifies the strategy.
func (p *MockProvider) Name() string { return "mock" }

var mockResults = map[string][]domain.SearchResult{
	"atrial fibrillation": {
		{
			URL:     "https://www.cdc.gov/heartdisease/atrial_fibrillation.htm",
			Title:   "Atrial Fibrillation - CDC",
			Snippet: "Atrial fibrillation (AFib) is the most common type of irregular heartbeat. Learn about symptoms, causes, and treatment options.",
		},
		{
			URL:     "https://www.mayoclinic.org/diseases-conditions/atrial-fibrillation/symptoms-causes/syc-20350624",
			Title:   "Atrial Fibrillation - Symptoms and Causes - Mayo Clinic",
			Snippet: "Atrial fibrillation is an irregular and often very rapid heart rhythm that can lead to blood clots in the heart.",
		},
	},
	"diabetes": {
		{
			URL:     "https://www.cdc.gov/diabetes/basics/diabetes.html",
			Title:   "What is Diabetes? - CDC",
			Snippet: "Diabetes is a chronic disease that affects how your body turns food into energy.",
		},
		{
			URL:     "https://www.nih.gov/diabetes",
			Title:   "Diabetes - National Institutes of Health",
			Snippet: "Information about diabetes research, treatment, and prevention from the NIH.",
		},
	},
	"covid": {
		{
			URL:     "https://www.cdc.gov/coronavirus/2019-ncov/index.html",
			Title:   "COVID-19 - CDC",
			Snippet: "Latest information about COVID-19 symptoms, testing, vaccines, and prevention.",
		},
	},
	"flu": {
		{
			URL:     "https://www.cdc.gov/flu/index.htm",
			Title:   "Influenza (Flu) - CDC",
			Snippet: "Information about seasonal flu, including symptoms, prevention, and vaccination.",
		},
	},
}

// Search matches the query against the curated topics, with a generic
// trusted-source fallback when no topic matches.
func (p *MockProvider) Search(_ context.Context, query string, limit int) ([]domain.SearchResult, error) {
	queryLower := strings.ToLower(query)

	var results []domain.SearchResult
	for topic, topicResults := range mockResults {
		if strings.Contains(queryLower, topic) || strings.Contains(topic, queryLower) {
			results = append(results, topicResults...)
		}
	}

	if len(results) == 0 {
		results = []domain.SearchResult{
			{
				URL:     "https://www.cdc.gov/",
				Title:   "CDC - Centers for Disease Control and Prevention",
				Snippet: fmt.Sprintf("Reliable health information about %s.", query),
			},
			{
				URL:     "https://www.nih.gov/",
				Title:   "NIH - National Institutes of Health",
				Snippet: fmt.Sprintf("Research and health information about %s.", query),
			},
			{
				URL:     "https://www.mayoclinic.org/",
				Title:   "Mayo Clinic",
				Snippet: fmt.Sprintf("Expert information about %s.", query),
			},
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
