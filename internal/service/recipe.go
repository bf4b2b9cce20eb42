package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

const (
	recipeNamePrefix         = "Recipe Name: "
	recipeIngredientsPrefix  = "Ingredients:\n"
	recipeInstructionsPrefix = "Instructions:\n"
	recipeSegmentSeparator   = "\n\n"
	recipeSegmentCount       = 3
)

// RecipeParseError is the failure variant of ParseRecipe. It keeps the raw
// model text for diagnostics.
type RecipeParseError struct {
	Raw      string
	Segments int
	// Missing names an empty section when the segment count was right.
	Missing string
}

func (e *RecipeParseError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("recipe text has an empty %s section", e.Missing)
	}
	return fmt.Sprintf("recipe text has %d blank-line separated segments, want %d", e.Segments, recipeSegmentCount)
}

// ParseRecipe splits raw on its first two blank lines into name, ingredients
// and steps. Any other segment count, or a blank section, is a hard failure;
// no partial recipe is returned.
func ParseRecipe(raw string) (*types.RecipeSuggestion, error) {
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	segments := strings.SplitN(text, recipeSegmentSeparator, recipeSegmentCount)
	if len(segments) < recipeSegmentCount {
		return nil, &RecipeParseError{Raw: raw, Segments: len(segments)}
	}

	recipe := &types.RecipeSuggestion{
		Name:        strings.TrimPrefix(segments[0], recipeNamePrefix),
		Ingredients: splitLines(strings.TrimPrefix(segments[1], recipeIngredientsPrefix)),
		Steps:       splitLines(strings.TrimPrefix(segments[2], recipeInstructionsPrefix)),
	}
	switch {
	case strings.TrimSpace(recipe.Name) == "":
		return nil, &RecipeParseError{Raw: raw, Segments: len(segments), Missing: "name"}
	case len(recipe.Ingredients) == 0:
		return nil, &RecipeParseError{Raw: raw, Segments: len(segments), Missing: "ingredients"}
	case len(recipe.Steps) == 0:
		return nil, &RecipeParseError{Raw: raw, Segments: len(segments), Missing: "instructions"}
	}
	return recipe, nil
}

func splitLines(segment string) []string {
	lines := []string{}
	for _, line := range strings.Split(segment, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// RecipeService turns inventory names into a parsed recipe suggestion
type RecipeService struct {
	llm       LLMServiceInterface
	inventory IInventoryService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(llm LLMServiceInterface, inventory IInventoryService) *RecipeService {
	return &RecipeService{
		llm:       llm,
		inventory: inventory,
	}
}

// Suggest requests a recipe for names and parses it. A nil names slice means
// the current stored inventory is used.
func (s *RecipeService) Suggest(ctx context.Context, names []string) (*types.RecipeSuggestion, error) {
	if names == nil {
		items, err := s.inventory.List(ctx)
		if err != nil {
			return nil, err
		}
		names = models.InventoryNames(items)
	}

	raw, err := s.llm.SuggestRecipe(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}

	recipe, err := ParseRecipe(raw)
	if err != nil {
		log.Printf("[RecipeService] Could not parse recipe reply: %v", err)
		return nil, err
	}
	return recipe, nil
}
