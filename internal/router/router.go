package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-tracker/backend/internal/api"
	"github.com/pageza/pantry-tracker/backend/internal/middleware"
	"github.com/pageza/pantry-tracker/backend/internal/service"
)

// Dependencies are the services and limiters the routes are built from.
// Nil limiters disable rate limiting for their endpoints.
type Dependencies struct {
	Inventory     service.IInventoryService
	LLM           service.LLMServiceInterface
	Capture       service.ICaptureService
	Recipes       service.IRecipeService
	CameraLimiter *middleware.RateLimiter
	RecipeLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(allowedOrigins []string, deps Dependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(allowedOrigins))

	// Health check endpoints
	router.GET("/health", api.HealthCheck)
	router.GET("/api/health", api.HealthCheck)

	apiGroup := router.Group("/api")

	api.NewInventoryHandler(deps.Inventory).RegisterRoutes(apiGroup)
	api.NewCameraHandler(deps.LLM, deps.Capture, limiterMiddleware(deps.CameraLimiter)).RegisterRoutes(apiGroup)
	api.NewRecipeHandler(deps.LLM, deps.Recipes, limiterMiddleware(deps.RecipeLimiter)).RegisterRoutes(apiGroup)

	api.RegisterRateLimitRoutes(apiGroup, map[string]*middleware.RateLimiter{
		"camera": deps.CameraLimiter,
		"recipe": deps.RecipeLimiter,
	})

	return router
}

func limiterMiddleware(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return nil
	}
	return rl.RateLimitMiddleware()
}
