package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goldenglowitsolutions/scheduling-service/internal/cache"
	"github.com/goldenglowitsolutions/scheduling-service/internal/services"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
)

type HealthHandler struct {
	BaseHandler
	serviceManager services.ServiceManager
	cacheManager   *cache.CacheManager
}

func NewHealthHandler(serviceManager services.ServiceManager, cacheManager *cache.CacheManager, logger utils.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler:    NewBaseHandler(logger),
		serviceManager: serviceManager,
		cacheManager:   cacheManager,
	}
}

// Check reports service health. The cache is optional infrastructure, so a
// cache outage degrades the status without failing it.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	overall := "healthy"
	components := gin.H{
		"database": "healthy",
		"cache":    "healthy",
	}

	if err := h.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
		components["database"] = "unhealthy"
	}

	if err := h.cacheManager.HealthCheck(c.Request.Context()); err != nil {
		components["cache"] = "unavailable"
		if overall == "healthy" {
			overall = "degraded"
		}
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"service":    "scheduling-service",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"components": components,
	})
}
