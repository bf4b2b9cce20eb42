package service

import (
	"context"
	"time"

	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// IInventoryService defines the Store Adapter over the inventory collection.
// Every mutation returns the refreshed full list.
type IInventoryService interface {
	Add(ctx context.Context, name string, viaCamera bool) (*types.MutationResult, error)
	Remove(ctx context.Context, name string) (*types.MutationResult, error)
	Delete(ctx context.Context, name string) (*types.MutationResult, error)
	List(ctx context.Context) ([]models.InventoryItem, error)
	Breakdown(ctx context.Context) (*types.Breakdown, error)
}

// LLMServiceInterface defines the two model proxies
type LLMServiceInterface interface {
	Ready() error
	Classify(ctx context.Context, imageURL string, inventoryNames []string) (string, error)
	SuggestRecipe(ctx context.Context, inventoryNames []string) (string, error)
}

// ObjectStorage is the transient object store used by the capture flow.
// *config.S3Config satisfies it.
type ObjectStorage interface {
	UploadObject(ctx context.Context, objectKey string, data []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// IImageService stages captured frames in object storage
type IImageService interface {
	Normalize(frame []byte) ([]byte, error)
	Stage(ctx context.Context, frame []byte) (*StagedImage, error)
}

// ICaptureService runs the capture -> classify -> reconcile -> store flow
type ICaptureService interface {
	Capture(ctx context.Context, frame []byte) (*types.CaptureResult, error)
}

// IRecipeService produces structured recipe suggestions
type IRecipeService interface {
	Suggest(ctx context.Context, names []string) (*types.RecipeSuggestion, error)
}
