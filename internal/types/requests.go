package types

// CameraRequest is the body of POST /api/camera
type CameraRequest struct {
	Img       string   `json:"img" binding:"required"`
	Inventory []string `json:"inventory"`
}

// RecipeRequest is the body of POST /api/recipe and POST /api/recipe/suggestion.
// A nil Inventory on the suggestion endpoint means "use the stored inventory".
type RecipeRequest struct {
	Inventory []string `json:"inventory"`
}

// AddItemRequest is the body of POST /api/inventory
type AddItemRequest struct {
	Name      string `json:"name" binding:"required"`
	ViaCamera bool   `json:"via_camera"`
}
