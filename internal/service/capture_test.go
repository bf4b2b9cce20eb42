package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-tracker/backend/internal/mocks"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

const (
	captureTestKey = "images_recognition/99.jpg"
	captureTestURL = "https://s3.test/images_recognition/99.jpg?sig"
)

type captureFixture struct {
	storage   *mocks.MockObjectStorage
	llm       *mocks.MockLLMService
	inventory *mocks.MockInventoryService
	service   *CaptureService
}

func newCaptureFixture() *captureFixture {
	f := &captureFixture{
		storage:   new(mocks.MockObjectStorage),
		llm:       new(mocks.MockLLMService),
		inventory: new(mocks.MockInventoryService),
	}
	images := NewImageService(f.storage, time.Minute, 1024)
	images.now = fixedClock(99)
	f.service = NewCaptureService(images, f.llm, f.inventory)
	return f
}

func (f *captureFixture) expectStaged(ctx context.Context) {
	f.llm.On("Ready").Return(nil)
	f.storage.On("UploadObject", ctx, captureTestKey, mock.Anything, "image/jpeg").Return(nil)
	f.storage.On("GeneratePresignedURL", ctx, captureTestKey, time.Minute).Return(captureTestURL, nil)
	f.storage.On("DeleteObject", mock.Anything, captureTestKey).Return(nil).Once()
}

func TestIsNoDetection(t *testing.T) {
	for _, label := range []string{"none", "NONE", "None.", "", "   ", "\n", "There is none"} {
		assert.True(t, IsNoDetection(label), label)
	}
	for _, label := range []string{"Milk", "apple", "Noodles"} {
		assert.False(t, IsNoDetection(label), label)
	}
}

func TestCaptureService_Capture(t *testing.T) {
	ctx := context.Background()
	existing := []models.InventoryItem{{Name: "Apple", Quantity: 1}}

	t.Run("detected label is added via camera", func(t *testing.T) {
		f := newCaptureFixture()
		f.expectStaged(ctx)
		f.inventory.On("List", ctx).Return(existing, nil)
		f.llm.On("Classify", ctx, captureTestURL, []string{"Apple"}).Return(" red apple\n", nil)
		f.inventory.On("Add", ctx, "red apple", true).Return(&types.MutationResult{
			Name:  "Apple",
			Items: []models.InventoryItem{{Name: "Apple", Quantity: 2}},
		}, nil)

		result, err := f.service.Capture(ctx, pngFrame(t, 16, 16))
		require.NoError(t, err)
		assert.True(t, result.Detected)
		assert.Equal(t, "red apple", result.Label)
		assert.Equal(t, "Apple", result.Name)
		assert.Equal(t, []models.InventoryItem{{Name: "Apple", Quantity: 2}}, result.Items)

		f.storage.AssertExpectations(t)
		f.storage.AssertNumberOfCalls(t, "DeleteObject", 1)
		f.inventory.AssertExpectations(t)
	})

	for _, reply := range []string{"none", "NONE", ""} {
		t.Run("no detection for "+reply+" writes nothing", func(t *testing.T) {
			f := newCaptureFixture()
			f.expectStaged(ctx)
			f.inventory.On("List", ctx).Return(existing, nil)
			f.llm.On("Classify", ctx, captureTestURL, []string{"Apple"}).Return(reply, nil)

			result, err := f.service.Capture(ctx, pngFrame(t, 16, 16))
			require.NoError(t, err)
			assert.False(t, result.Detected)
			assert.Equal(t, NoDetectionMessage, result.Message)
			assert.Empty(t, result.Items)

			f.inventory.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
			f.storage.AssertNumberOfCalls(t, "DeleteObject", 1)
		})
	}

	t.Run("classification failure still deletes the object", func(t *testing.T) {
		f := newCaptureFixture()
		f.expectStaged(ctx)
		f.inventory.On("List", ctx).Return([]models.InventoryItem{}, nil)
		f.llm.On("Classify", ctx, captureTestURL, []string{}).Return("", errors.New("API request failed with status 500"))

		result, err := f.service.Capture(ctx, pngFrame(t, 16, 16))
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to classify capture")

		f.storage.AssertNumberOfCalls(t, "DeleteObject", 1)
		f.inventory.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure after classification", func(t *testing.T) {
		f := newCaptureFixture()
		f.expectStaged(ctx)
		f.inventory.On("List", ctx).Return(existing, nil)
		f.llm.On("Classify", ctx, captureTestURL, []string{"Apple"}).Return("Milk", nil)
		f.inventory.On("Add", ctx, "Milk", true).Return(nil, errors.New("db down"))

		_, err := f.service.Capture(ctx, pngFrame(t, 16, 16))
		assert.EqualError(t, err, "db down")
		f.storage.AssertNumberOfCalls(t, "DeleteObject", 1)
	})

	t.Run("missing credential fails before upload", func(t *testing.T) {
		f := newCaptureFixture()
		f.llm.On("Ready").Return(ErrMissingAPIKey)

		_, err := f.service.Capture(ctx, pngFrame(t, 16, 16))
		assert.ErrorIs(t, err, ErrMissingAPIKey)
		f.storage.AssertNotCalled(t, "UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.inventory.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("invalid frame", func(t *testing.T) {
		f := newCaptureFixture()
		f.llm.On("Ready").Return(nil)
		f.inventory.On("List", ctx).Return(existing, nil)

		_, err := f.service.Capture(ctx, []byte("not an image"))
		assert.ErrorIs(t, err, ErrInvalidImage)
		f.llm.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything, mock.Anything)
	})
}
