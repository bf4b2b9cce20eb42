package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// NoDetectionSentinel is the model's reply when nothing food-related is visible
const NoDetectionSentinel = "none"

// NoDetectionMessage is shown when a capture yields no usable label
const NoDetectionMessage = "No food item detected. Please try again or enter the name manually."

// CaptureService runs upload -> classify -> delete -> reconcile -> store-write
type CaptureService struct {
	images    IImageService
	llm       LLMServiceInterface
	inventory IInventoryService
}

// NewCaptureService creates a new CaptureService instance
func NewCaptureService(images IImageService, llm LLMServiceInterface, inventory IInventoryService) *CaptureService {
	return &CaptureService{
		images:    images,
		llm:       llm,
		inventory: inventory,
	}
}

// IsNoDetection reports whether a classification label means "nothing found":
// empty, or containing the sentinel in any case.
func IsNoDetection(label string) bool {
	label = strings.TrimSpace(label)
	return label == "" || strings.Contains(strings.ToLower(label), NoDetectionSentinel)
}

// Capture classifies frame and adds the detected item to the inventory.
// A "no detection" outcome is not an error and writes nothing. The staged
// object is deleted on every path once classification has finished.
func (s *CaptureService) Capture(ctx context.Context, frame []byte) (*types.CaptureResult, error) {
	if err := s.llm.Ready(); err != nil {
		return nil, err
	}

	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	staged, err := s.images.Stage(ctx, frame)
	if err != nil {
		return nil, err
	}
	cleanupCtx := context.WithoutCancel(ctx)
	defer staged.Release(cleanupCtx)

	raw, err := s.llm.Classify(ctx, staged.URL, models.InventoryNames(items))
	staged.Release(cleanupCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to classify capture: %w", err)
	}

	label := strings.TrimSpace(raw)
	if IsNoDetection(label) {
		log.Printf("[CaptureService] No detection for %s (reply %q)", staged.Key, raw)
		return &types.CaptureResult{Detected: false, Label: label, Message: NoDetectionMessage}, nil
	}

	result, err := s.inventory.Add(ctx, label, true)
	if err != nil {
		return nil, err
	}

	log.Printf("[CaptureService] Detected %q, stored as %q", label, result.Name)
	return &types.CaptureResult{
		Detected: true,
		Label:    label,
		Name:     result.Name,
		Items:    result.Items,
	}, nil
}
