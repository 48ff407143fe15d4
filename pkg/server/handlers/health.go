package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/soundprediction/globescope"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// RequestIDKey is the gin context key under which the request ID is stored.
const RequestIDKey = "request_id"

// NewRequestID returns a fresh request identifier.
func NewRequestID() string {
	return uuid.NewString()
}

// HealthHandler handles health check requests
type HealthHandler struct {
	client *globescope.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(client *globescope.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "globescope",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// ReadinessCheck handles GET /ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ready",
		"service":   "globescope",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.client == nil {
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	response["checks"] = gin.H{
		"media_registry": gin.H{
			"status":  "ok",
			"outlets": h.client.MediaRegistry().Size(),
		},
	}
	c.JSON(http.StatusOK, response)
}

// LivenessCheck handles GET /live for orchestrator liveness probes
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"go":        GoVersion,
	})
}
