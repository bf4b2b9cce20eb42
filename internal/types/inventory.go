package types

import "github.com/pageza/pantry-tracker/backend/internal/models"

// MutationResult is returned by every inventory mutation: the key that was
// written (after reconciliation) and the refreshed full list.
type MutationResult struct {
	Name  string                 `json:"name"`
	Items []models.InventoryItem `json:"items"`
}

// BreakdownSlice is one entry of the aggregate inventory chart
type BreakdownSlice struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Share    float64 `json:"share"`
}

// Breakdown aggregates quantities across the inventory
type Breakdown struct {
	Total  int              `json:"total"`
	Slices []BreakdownSlice `json:"slices"`
}

// CaptureResult reports the outcome of the camera capture flow
type CaptureResult struct {
	Detected bool                   `json:"detected"`
	Label    string                 `json:"label,omitempty"`
	Name     string                 `json:"name,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Items    []models.InventoryItem `json:"items,omitempty"`
}
