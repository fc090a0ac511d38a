// Package extract pulls the main textual content out of web articles.
// Readability does the heavy lifting; a goquery pass covers pages it
// cannot handle.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/ports"
)

const (
	defaultUserAgent = "EazyHealth/1.0 (Health Information Bot)"
	maxBodyBytes     = 4 << 20
)

// Extractor fetches article pages and extracts their readable text.
type Extractor struct {
	client    *http.Client
	userAgent string
}

var _ ports.Extractor = (*Extractor)(nil)

// NewExtractor wires an HTTP client; a nil client gets sane defaults.
func NewExtractor(client *http.Client) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Extractor{client: client, userAgent: defaultUserAgent}
}

// Extract fetches the URL and returns its main content. Pages with no
// extractable body text fail with domain.ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (domain.SourceDocument, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return domain.SourceDocument{}, fmt.Errorf("%w: invalid url %q", domain.ErrExtractionFailed, rawURL)
	}

	body, err := e.fetch(ctx, rawURL)
	if err != nil {
		return domain.SourceDocument{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	if doc, ok := e.readable(body, parsed); ok {
		doc.URL = rawURL
		return doc, nil
	}

	doc, ok := e.fallback(body)
	if !ok {
		return domain.SourceDocument{}, fmt.Errorf("%w: no extractable body text at %s", domain.ErrExtractionFailed, rawURL)
	}
	doc.URL = rawURL
	return doc, nil
}

func (e *Extractor) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (e *Extractor) readable(body []byte, pageURL *url.URL) (domain.SourceDocument, bool) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return domain.SourceDocument{}, false
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return domain.SourceDocument{}, false
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = "Article"
	}

	return domain.SourceDocument{Title: title, Text: text}, true
}

// fallback strips boilerplate with goquery and keeps whatever text is left
// in the most article-like container.
func (e *Extractor) fallback(body []byte) (domain.SourceDocument, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.SourceDocument{}, false
	}

	doc.Find("script, style, nav, footer, aside").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "Article"
	}

	var container *goquery.Selection
	for _, selector := range []string{"article", "main", "body"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			container = sel
			break
		}
	}
	if container == nil {
		return domain.SourceDocument{}, false
	}

	text := cleanLines(container.Text())
	if text == "" {
		return domain.SourceDocument{}, false
	}

	return domain.SourceDocument{Title: title, Text: text}, true
}

func cleanLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n\n")
}

// Excerpt shortens article text for previews, preferring a sentence
// boundary when one lands late enough in the window.
func Excerpt(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}

	cut := text[:maxChars]
	end := strings.LastIndexAny(cut, ".?!")
	if end > (maxChars*7)/10 {
		return cut[:end+1]
	}
	return cut + "..."
}
