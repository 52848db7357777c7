package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	mode  string
	model string
}

// NewHealthHandler creates a new HealthHandler reporting the extractor mode chosen at startup.
func NewHealthHandler(mode, model string) *HealthHandler {
	return &HealthHandler{mode: mode, model: model}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": h.mode, "model": h.model})
}
