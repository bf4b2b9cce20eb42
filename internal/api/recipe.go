package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-tracker/backend/internal/service"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

const (
	recipeFailedMessage    = "Failed to generate recipe. Please try again."
	recipeGenerationFailed = "recipe generation failed"
)

// RecipeHandler serves the recipe proxy and the parsed suggestion endpoint
type RecipeHandler struct {
	llm         service.LLMServiceInterface
	recipes     service.IRecipeService
	rateLimiter gin.HandlerFunc
}

// NewRecipeHandler creates a new RecipeHandler instance. rateLimiter may be nil.
func NewRecipeHandler(llm service.LLMServiceInterface, recipes service.IRecipeService, rateLimiter gin.HandlerFunc) *RecipeHandler {
	return &RecipeHandler{
		llm:         llm,
		recipes:     recipes,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipe := router.Group("/recipe")
	if h.rateLimiter != nil {
		recipe.Use(h.rateLimiter)
	}
	{
		recipe.POST("", h.Generate)
		recipe.POST("/suggestion", h.Suggest)
	}
}

// Generate returns the model's raw recipe text for the given names
func (h *RecipeHandler) Generate(c *gin.Context) {
	if err := h.llm.Ready(); err != nil {
		respondUpstreamError(c, "RecipeHandler", err, recipeFailedMessage)
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	text, err := h.llm.SuggestRecipe(c.Request.Context(), req.Inventory)
	if err != nil {
		respondUpstreamError(c, "RecipeHandler", err, recipeFailedMessage)
		return
	}
	c.String(http.StatusOK, text)
}

// Suggest returns a parsed recipe. Without an inventory in the body the
// stored inventory is used.
func (h *RecipeHandler) Suggest(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	recipe, err := h.recipes.Suggest(c.Request.Context(), req.Inventory)
	if err != nil {
		var parseErr *service.RecipeParseError
		if errors.As(err, &parseErr) {
			_ = c.Error(fmt.Errorf("RecipeHandler: %w", err))
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: recipeGenerationFailed, Raw: parseErr.Raw})
			return
		}
		respondUpstreamError(c, "RecipeHandler", err, recipeFailedMessage)
		return
	}
	c.JSON(http.StatusOK, RecipeResponse{Recipe: recipe})
}
