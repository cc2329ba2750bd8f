package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goldenglowitsolutions/scheduling-service/internal/ratelimit"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
)

type RateLimitHandler struct {
	BaseHandler
	bucket *ratelimit.Bucket
}

func NewRateLimitHandler(bucket *ratelimit.Bucket, logger utils.Logger) *RateLimitHandler {
	return &RateLimitHandler{
		BaseHandler: NewBaseHandler(logger),
		bucket:      bucket,
	}
}

// GetInfo reports the limiter's current state
// @Summary Rate limiter status
// @Tags rate-limit
// @Produce json
// @Success 200 {object} ratelimit.Info
// @Router /rate-limit/info [get]
func (h *RateLimitHandler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.bucket.Info())
}
