// Package usecase implements the application services: source resolution,
// on-demand explainers, briefing generation, and the scheduled daily run.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/ports"
)

// SourceResolver turns a query or URL into source documents, restricted to
// the trusted-domain allowlist. It never fabricates content: when nothing
// trusted resolves, the caller gets an error instead of an empty basis.
type SourceResolver struct {
	search     ports.SearchProvider
	extractor  ports.Extractor
	trusted    []string
	maxResults int
	logger     *slog.Logger
}

// NewSourceResolver wires the search and extraction strategies. Trusted
// domains are matched exactly or by subdomain, with "www." ignored.
func NewSourceResolver(search ports.SearchProvider, extractor ports.Extractor, trusted []string, maxResults int, logger *slog.Logger) *SourceResolver {
	normalized := make([]string, 0, len(trusted))
	for _, d := range trusted {
		if d = normalizeDomain(d); d != "" {
			normalized = append(normalized, d)
		}
	}
	if maxResults <= 0 {
		maxResults = 3
	}
	return &SourceResolver{
		search:     search,
		extractor:  extractor,
		trusted:    normalized,
		maxResults: maxResults,
		logger:     logger,
	}
}

// ResolveQuery searches for the query and returns extracted documents from
// trusted domains only. An unreachable page degrades to its search snippet
// rather than failing the whole request.
func (r *SourceResolver) ResolveQuery(ctx context.Context, query string) ([]domain.SourceDocument, error) {
	results, err := r.search.Search(ctx, query, r.maxResults*2)
	if err != nil {
		return nil, fmt.Errorf("%w: %s search: %v", domain.ErrNoTrustedSources, r.search.Name(), err)
	}

	var docs []domain.SourceDocument
	for _, result := range results {
		if len(docs) >= r.maxResults {
			break
		}
		if !r.isTrusted(result.URL) {
			continue
		}

		doc, err := r.extractor.Extract(ctx, result.URL)
		if err != nil {
			r.logger.Warn("extraction failed, using snippet", "url", result.URL, "error", err)
			doc = domain.SourceDocument{URL: result.URL, Title: result.Title, Text: result.Snippet}
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no trusted results for %q", domain.ErrNoTrustedSources, query)
	}
	return docs, nil
}

// ResolveURL extracts a single caller-provided URL. The allowlist is not
// applied here; an explicit URL is the caller's choice of source.
func (r *SourceResolver) ResolveURL(ctx context.Context, pageURL string) (domain.SourceDocument, error) {
	return r.extractor.Extract(ctx, pageURL)
}

func (r *SourceResolver) isTrusted(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := normalizeDomain(parsed.Hostname())

	for _, trusted := range r.trusted {
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}
	return false
}

func normalizeDomain(domainName string) string {
	d := strings.ToLower(strings.TrimSpace(domainName))
	return strings.TrimPrefix(d, "www.")
}
