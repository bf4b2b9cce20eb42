package types

// RecipeSuggestion is a recipe derived from the model's three-segment text.
// It is never persisted.
type RecipeSuggestion struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}
