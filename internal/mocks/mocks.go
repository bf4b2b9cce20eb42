package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// MockInventoryService is a mock implementation of the inventory service
type MockInventoryService struct {
	mock.Mock
}

// Add mocks the Add method
func (m *MockInventoryService) Add(ctx context.Context, name string, viaCamera bool) (*types.MutationResult, error) {
	args := m.Called(ctx, name, viaCamera)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MutationResult), args.Error(1)
}

// Remove mocks the Remove method
func (m *MockInventoryService) Remove(ctx context.Context, name string) (*types.MutationResult, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MutationResult), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockInventoryService) Delete(ctx context.Context, name string) (*types.MutationResult, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MutationResult), args.Error(1)
}

// List mocks the List method
func (m *MockInventoryService) List(ctx context.Context) ([]models.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryItem), args.Error(1)
}

// Breakdown mocks the Breakdown method
func (m *MockInventoryService) Breakdown(ctx context.Context) (*types.Breakdown, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Breakdown), args.Error(1)
}

// MockLLMService is a mock implementation of the LLM service
type MockLLMService struct {
	mock.Mock
}

// Ready mocks the Ready method
func (m *MockLLMService) Ready() error {
	args := m.Called()
	return args.Error(0)
}

// Classify mocks the Classify method
func (m *MockLLMService) Classify(ctx context.Context, imageURL string, inventoryNames []string) (string, error) {
	args := m.Called(ctx, imageURL, inventoryNames)
	return args.String(0), args.Error(1)
}

// SuggestRecipe mocks the SuggestRecipe method
func (m *MockLLMService) SuggestRecipe(ctx context.Context, inventoryNames []string) (string, error) {
	args := m.Called(ctx, inventoryNames)
	return args.String(0), args.Error(1)
}

// MockObjectStorage is a mock implementation of the capture object store
type MockObjectStorage struct {
	mock.Mock
}

// UploadObject mocks the UploadObject method
func (m *MockObjectStorage) UploadObject(ctx context.Context, objectKey string, data []byte, contentType string) error {
	args := m.Called(ctx, objectKey, data, contentType)
	return args.Error(0)
}

// GeneratePresignedURL mocks the GeneratePresignedURL method
func (m *MockObjectStorage) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expiration)
	return args.String(0), args.Error(1)
}

// DeleteObject mocks the DeleteObject method
func (m *MockObjectStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

// MockCaptureService is a mock implementation of the capture service
type MockCaptureService struct {
	mock.Mock
}

// Capture mocks the Capture method
func (m *MockCaptureService) Capture(ctx context.Context, frame []byte) (*types.CaptureResult, error) {
	args := m.Called(ctx, frame)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CaptureResult), args.Error(1)
}
