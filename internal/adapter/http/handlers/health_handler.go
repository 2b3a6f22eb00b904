package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

// HealthHandler serves the root banner and the liveness probe.
type HealthHandler struct {
	startedAt time.Time
	now       func() time.Time
}

func NewHealthHandler() *HealthHandler {
	now := func() time.Time { return time.Now().UTC() }
	return &HealthHandler{startedAt: now(), now: now}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "VermaFarm API is running",
		"version": apiVersion,
		"endpoints": gin.H{
			"auth":            "/api/auth",
			"inventory":       "/api/inventory",
			"serviceRequests": "/api/service-requests",
			"marketplace":     "/api/marketplace",
		},
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	now := h.now()
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    "healthy",
		"uptime":    now.Sub(h.startedAt).Seconds(),
		"timestamp": now.Format(time.RFC3339),
	})
}

// NotFound answers every unmatched route.
func (h *HealthHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
}
