package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/globescope"
	"github.com/soundprediction/globescope/pkg/server/dto"
	"github.com/soundprediction/globescope/pkg/types"
)

// SearchHandler handles search and analysis requests
type SearchHandler struct {
	client *globescope.Client
	logger *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(client *globescope.Client, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{client: client, logger: logger}
}

// Search handles POST /api/v1/search: one coordinated search across all
// requested countries, no per-country bucketing.
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	requestID := c.GetString(RequestIDKey)
	articles, err := h.client.Search(c.Request.Context(), req.ToParams(), req.Topic)
	if err != nil {
		h.logger.Error("Search request failed", "request_id", requestID, "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "search_failed", Message: err.Error()})
		return
	}
	if articles == nil {
		articles = []types.Article{}
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		RequestID: requestID,
		Count:     len(articles),
		Articles:  articles,
	})
}

// Analyze handles POST /api/v1/analyze: the full per-country orchestration
// producing a keyed report. Always returns 200 with a well-formed report;
// countries that yielded nothing appear as empty buckets.
func (h *SearchHandler) Analyze(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if len(req.TargetCountries) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "target_countries cannot be empty"})
		return
	}

	requestID := c.GetString(RequestIDKey)
	rep, cached := h.client.Analyze(c.Request.Context(), req.ToParams(), req.Topic, req.CountryRoles)

	c.JSON(http.StatusOK, dto.AnalyzeResponse{
		RequestID: requestID,
		Cached:    cached,
		Report:    rep,
	})
}
