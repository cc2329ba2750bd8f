package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Middleware rejects requests with 429 once the bucket is exhausted. One
// token per request, one global bucket for the whole API.
func Middleware(bucket *Bucket) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bucket.TryConsume(1) {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.Itoa(int(bucket.RefillPeriod().Seconds())))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"message": "Rate limit exceeded. Please try again later.",
		})
	}
}
