package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"eazyhealth/internal/dedup"
	"eazyhealth/internal/domain"
	"eazyhealth/internal/generation"
	"eazyhealth/internal/ports"
	"eazyhealth/internal/usecase"
)

type memoryRepo struct {
	mu        sync.Mutex
	briefings []domain.Briefing
	nextID    int64
}

func (m *memoryRepo) Create(_ context.Context, b domain.Briefing) (domain.Briefing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.briefings {
		if existing.Slug == b.Slug {
			return domain.Briefing{}, fmt.Errorf("%w: %s", domain.ErrSlugCollision, b.Slug)
		}
	}
	m.nextID++
	b.ID = m.nextID
	m.briefings = append(m.briefings, b)
	return b, nil
}

func (m *memoryRepo) List(_ context.Context, filter ports.ListFilter) ([]domain.Briefing, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []domain.Briefing
	for i := len(m.briefings) - 1; i >= 0; i-- {
		b := m.briefings[i]
		if filter.SourceType != "" && b.SourceType != filter.SourceType {
			continue
		}
		matched = append(matched, b)
	}
	total := len(matched)
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (m *memoryRepo) GetBySlug(_ context.Context, slug string) (domain.Briefing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.briefings {
		if b.Slug == slug {
			return b, nil
		}
	}
	return domain.Briefing{}, fmt.Errorf("%w: briefing %s", domain.ErrNotFound, slug)
}

func (m *memoryRepo) ListRecent(_ context.Context, since time.Time, sourceType domain.SourceType) ([]domain.Briefing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []domain.Briefing
	for _, b := range m.briefings {
		if b.SourceType == sourceType && !b.CreatedAt.Before(since) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (m *memoryRepo) SaveExplainerLog(_ context.Context, _ domain.ExplainerLog) error { return nil }

type fakeSearch struct {
	results []domain.SearchResult
}

func (f *fakeSearch) Name() string { return "fake" }

func (f *fakeSearch) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return f.results, nil
}

type fakeExtractor struct {
	docs map[string]domain.SourceDocument
}

func (f *fakeExtractor) Extract(_ context.Context, url string) (domain.SourceDocument, error) {
	doc, ok := f.docs[url]
	if !ok {
		return domain.SourceDocument{}, fmt.Errorf("%w: unreachable %s", domain.ErrExtractionFailed, url)
	}
	return doc, nil
}

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Name() string { return "stub" }

func (s *stubLLM) Complete(_ context.Context, _, _ string) (string, error) {
	return s.response, s.err
}

const articleJSON = `{"title":"Flu Season Update","summary":"Flu activity is rising.",` +
	`"body_markdown":"## Overview\nGet vaccinated early.","tags":["flu","vaccine"]}`

const explainerJSON = `{"title":"Understanding AFib","sections":[{"heading":"What it is","content":"An irregular heartbeat."}]}`

func newTestServer(repo *memoryRepo, provider ports.LLMProvider, search ports.SearchProvider, extractor ports.Extractor) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := usecase.NewSourceResolver(search, extractor, []string{"cdc.gov"}, 3, logger)
	engine := generation.NewEngine(provider, "Consult a professional.", 16000, logger)
	explainer := usecase.NewExplainerService(resolver, engine, repo, logger)
	briefings := usecase.NewBriefingService(resolver, engine, repo, dedup.NewChecker(), logger)
	return NewServer(":0", explainer, briefings, logger)
}

func doJSON(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func TestExplainRawText(t *testing.T) {
	t.Parallel()

	server := newTestServer(&memoryRepo{}, &stubLLM{response: explainerJSON}, &fakeSearch{}, &fakeExtractor{})

	recorder := doJSON(t, server, http.MethodPost, "/api/explain",
		`{"raw_text":"Metformin lowers blood sugar.","reading_level":"grade8"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", recorder.Code, recorder.Body)
	}

	var result domain.ExplainerResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Title != "Understanding AFib" || result.Disclaimer == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestExplainNoInput(t *testing.T) {
	t.Parallel()

	server := newTestServer(&memoryRepo{}, &stubLLM{response: explainerJSON}, &fakeSearch{}, &fakeExtractor{})

	recorder := doJSON(t, server, http.MethodPost, "/api/explain", `{}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestExplainInvalidReadingLevel(t *testing.T) {
	t.Parallel()

	server := newTestServer(&memoryRepo{}, &stubLLM{response: explainerJSON}, &fakeSearch{}, &fakeExtractor{})

	recorder := doJSON(t, server, http.MethodPost, "/api/explain",
		`{"raw_text":"text","reading_level":"phd"}`)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", recorder.Code)
	}
}

func TestExplainNoTrustedSources(t *testing.T) {
	t.Parallel()

	search := &fakeSearch{results: []domain.SearchResult{
		{URL: "https://untrusted.example.com/x", Title: "x", Snippet: "x"},
	}}
	server := newTestServer(&memoryRepo{}, &stubLLM{response: explainerJSON}, search, &fakeExtractor{})

	recorder := doJSON(t, server, http.MethodPost, "/api/explain", `{"query":"flu"}`)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}

func TestExplainGenerationFailure(t *testing.T) {
	t.Parallel()

	server := newTestServer(&memoryRepo{}, &stubLLM{err: fmt.Errorf("model overloaded")}, &fakeSearch{}, &fakeExtractor{})

	recorder := doJSON(t, server, http.MethodPost, "/api/explain", `{"raw_text":"text"}`)
	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", recorder.Code)
	}
}

func seedBriefings(repo *memoryRepo, n int) {
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.nextID++
		repo.briefings = append(repo.briefings, domain.Briefing{
			ID:           repo.nextID,
			Title:        fmt.Sprintf("Briefing %d", i),
			Slug:         fmt.Sprintf("briefing-%d", i),
			Summary:      "s",
			Body:         "b",
			SourceType:   domain.SourceArticleSummary,
			SourceURLs:   []string{"https://www.cdc.gov/"},
			Tags:         []string{"tag"},
			ReadingLevel: domain.LevelGrade8,
			Disclaimer:   "d",
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		})
	}
}

func TestListBriefings(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	seedBriefings(repo, 3)
	server := newTestServer(repo, &stubLLM{}, &fakeSearch{}, &fakeExtractor{})

	recorder := doJSON(t, server, http.MethodGet, "/api/briefings?limit=2", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", recorder.Code, recorder.Body)
	}

	var resp listResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 3 || len(resp.Items) != 2 {
		t.Fatalf("unexpected page: total=%d items=%d", resp.Total, len(resp.Items))
	}
	if resp.Items[0].Slug != "briefing-2" {
		t.Fatalf("newest briefing must come first, got %s", resp.Items[0].Slug)
	}
}

func TestListBriefingsBadSourceType(t *testing.T) {
	t.Parallel()

	server := newTestServer(&memoryRepo{}, &stubLLM{}, &fakeSearch{}, &fakeExtractor{})

	recorder := doJSON(t, server, http.MethodGet, "/api/briefings?source_type=blog", "")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestGetBriefing(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	seedBriefings(repo, 1)
	server := newTestServer(repo, &stubLLM{}, &fakeSearch{}, &fakeExtractor{})

	recorder := doJSON(t, server, http.MethodGet, "/api/briefings/briefing-0", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", recorder.Code, recorder.Body)
	}

	var resp briefingResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Slug != "briefing-0" || resp.ReadingLevel != "grade8" {
		t.Fatalf("unexpected briefing: %+v", resp)
	}

	if recorder := doJSON(t, server, http.MethodGet, "/api/briefings/missing", ""); recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing slug, got %d", recorder.Code)
	}
}

func TestGenerateBriefing(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	search := &fakeSearch{results: []domain.SearchResult{
		{URL: "https://www.cdc.gov/flu", Title: "Flu - CDC", Snippet: "flu"},
	}}
	extractor := &fakeExtractor{docs: map[string]domain.SourceDocument{
		"https://www.cdc.gov/flu": {URL: "https://www.cdc.gov/flu", Title: "Flu - CDC", Text: "Flu overview."},
	}}
	server := newTestServer(repo, &stubLLM{response: articleJSON}, search, extractor)

	recorder := doJSON(t, server, http.MethodPost, "/api/briefings/generate",
		`{"source_type":"article_summary","topic":"flu prevention"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", recorder.Code, recorder.Body)
	}

	var resp struct {
		Created  bool             `json:"created"`
		Briefing briefingResponse `json:"briefing"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Created || resp.Briefing.ID == 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// Same title on the same day collides on slug.
	if recorder := doJSON(t, server, http.MethodPost, "/api/briefings/generate",
		`{"source_type":"article_summary","topic":"flu prevention"}`); recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409 on slug collision, got %d", recorder.Code)
	}
}

func TestGenerateBriefingBadSourceType(t *testing.T) {
	t.Parallel()

	server := newTestServer(&memoryRepo{}, &stubLLM{}, &fakeSearch{}, &fakeExtractor{})

	recorder := doJSON(t, server, http.MethodPost, "/api/briefings/generate", `{"source_type":"blog"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}
