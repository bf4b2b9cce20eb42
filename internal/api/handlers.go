package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-tracker/backend/internal/middleware"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Pantry Tracker API is running",
		"version": "v1.0.0",
	})
}

// RegisterRateLimitRoutes registers an endpoint reporting the caller's
// remaining budget on the rate-limited AI endpoints. Nil limiters are skipped.
func RegisterRateLimitRoutes(router *gin.RouterGroup, limiters map[string]*middleware.RateLimiter) {
	router.GET("/rate-limits", func(c *gin.Context) {
		status := gin.H{}
		for name, limiter := range limiters {
			if limiter == nil {
				continue
			}
			remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), c.ClientIP())
			if err != nil {
				c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to check rate limit"})
				return
			}
			status[name] = gin.H{
				"limit":      limiter.Limit(),
				"remaining":  remaining,
				"reset_time": resetTime.Unix(),
			}
		}
		c.JSON(http.StatusOK, status)
	})
}
