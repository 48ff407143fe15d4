package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/globescope/pkg/media"
	"github.com/soundprediction/globescope/pkg/server/dto"
)

// MediaHandler serves outlet registry lookups
type MediaHandler struct {
	registry *media.Registry
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(registry *media.Registry) *MediaHandler {
	return &MediaHandler{registry: registry}
}

// List handles GET /api/v1/media
func (h *MediaHandler) List(c *gin.Context) {
	outlets := h.registry.All()
	c.JSON(http.StatusOK, dto.MediaListResponse{
		Count:   len(outlets),
		Outlets: outlets,
	})
}

// Get handles GET /api/v1/media/:source; the optional country query
// parameter narrows ambiguous name matches. Unknown sources return the
// unclassified sentinel rather than 404, matching pipeline behavior.
func (h *MediaHandler) Get(c *gin.Context) {
	source := c.Param("source")
	hint := c.Query("country")
	c.JSON(http.StatusOK, h.registry.Lookup(source, hint))
}
