package api

import (
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

// InventoryResponse is the body of GET /api/inventory
type InventoryResponse struct {
	Items []models.InventoryItem `json:"items"`
}

// RecipeResponse is the body of POST /api/recipe/suggestion
type RecipeResponse struct {
	Recipe *types.RecipeSuggestion `json:"recipe"`
}
