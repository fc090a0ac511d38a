package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"eazyhealth/internal/domain"
	"eazyhealth/internal/ports"
	"eazyhealth/internal/readinglevel"
	"eazyhealth/internal/usecase"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

type explainRequest struct {
	Query        string `json:"query"`
	URL          string `json:"url"`
	RawText      string `json:"raw_text"`
	ReadingLevel string `json:"reading_level"`
}

type generateRequest struct {
	SourceType   string         `json:"source_type"`
	Topic        string         `json:"topic"`
	ReadingLevel string         `json:"reading_level"`
	UseMockData  bool           `json:"use_mock_data"`
	DiseaseStats map[string]any `json:"disease_stats"`
}

type briefingResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Summary      string    `json:"summary"`
	Body         string    `json:"body"`
	SourceType   string    `json:"source_type"`
	SourceURLs   []string  `json:"source_urls"`
	Tags         []string  `json:"tags"`
	ReadingLevel string    `json:"reading_level"`
	Disclaimer   string    `json:"disclaimer"`
	CreatedAt    time.Time `json:"created_at"`
}

type listResponse struct {
	Items []briefingResponse `json:"items"`
	Total int                `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleExplain(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.explainer.Explain(c.Request.Context(), usecase.ExplainRequest{
		Query:        req.Query,
		URL:          req.URL,
		RawText:      req.RawText,
		ReadingLevel: req.ReadingLevel,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListBriefings(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultPageLimit)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
		return
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "offset must be a non-negative integer"})
		return
	}

	sourceType, ok := parseSourceType(c.Query("source_type"), true)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown source_type"})
		return
	}

	items, total, err := s.briefings.List(c.Request.Context(), ports.ListFilter{
		SourceType: sourceType,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := listResponse{Items: make([]briefingResponse, 0, len(items)), Total: total}
	for _, b := range items {
		resp.Items = append(resp.Items, toBriefingResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetBriefing(c *gin.Context) {
	briefing, err := s.briefings.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBriefingResponse(briefing))
}

func (s *Server) handleGenerateBriefing(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sourceType, ok := parseSourceType(req.SourceType, false)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "source_type must be data_analysis or article_summary"})
		return
	}

	var level domain.ReadingLevel
	if req.ReadingLevel != "" {
		parsed, err := readinglevel.Parse(req.ReadingLevel)
		if err != nil {
			s.writeError(c, err)
			return
		}
		level = parsed
	}

	briefing, err := s.briefings.Generate(c.Request.Context(), usecase.GenerateRequest{
		SourceType:   sourceType,
		Topic:        req.Topic,
		ReadingLevel: level,
		UseMockData:  req.UseMockData,
		Stats:        req.DiseaseStats,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": true, "briefing": toBriefingResponse(briefing)})
}

// writeError maps domain sentinels onto HTTP statuses.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrNoInput), errors.Is(err, domain.ErrExtractionFailed):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoTrustedSources):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSlugCollision):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidReadingLevel):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGenerationFailed), errors.Is(err, domain.ErrMalformedOutput):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func parseSourceType(raw string, allowEmpty bool) (domain.SourceType, bool) {
	switch domain.SourceType(raw) {
	case domain.SourceDataAnalysis:
		return domain.SourceDataAnalysis, true
	case domain.SourceArticleSummary:
		return domain.SourceArticleSummary, true
	case "":
		if allowEmpty {
			return "", true
		}
		return "", false
	default:
		return "", false
	}
}

func toBriefingResponse(b domain.Briefing) briefingResponse {
	return briefingResponse{
		ID:           b.ID,
		Title:        b.Title,
		Slug:         b.Slug,
		Summary:      b.Summary,
		Body:         b.Body,
		SourceType:   string(b.SourceType),
		SourceURLs:   b.SourceURLs,
		Tags:         b.Tags,
		ReadingLevel: string(b.ReadingLevel),
		Disclaimer:   b.Disclaimer,
		CreatedAt:    b.CreatedAt,
	}
}
