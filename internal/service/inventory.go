package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// ErrInvalidItemName is returned when an item name is blank
var ErrInvalidItemName = errors.New("item name must not be blank")

// InventoryService is the Store Adapter over the inventory collection.
//
// Read-then-write sequences run without locks or transactions: two clients
// adding the same item concurrently can lose an update.
type InventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new InventoryService instance
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// Add increments the quantity of name, creating it with quantity 1 when
// absent. With viaCamera the name is first reconciled against existing names.
func (s *InventoryService) Add(ctx context.Context, name string, viaCamera bool) (*types.MutationResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidItemName
	}

	if viaCamera {
		items, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		reconciled := Reconcile(name, models.InventoryNames(items))
		if reconciled != name {
			log.Printf("[InventoryService] Reconciled camera label %q to existing item %q", name, reconciled)
		}
		name = reconciled
	}

	item, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}

	if item == nil {
		if err := s.db.WithContext(ctx).Create(&models.InventoryItem{Name: name, Quantity: 1}).Error; err != nil {
			return nil, fmt.Errorf("failed to create item %q: %w", name, err)
		}
	} else {
		if err := s.setQuantity(ctx, name, item.Quantity+1); err != nil {
			return nil, err
		}
	}

	return s.refresh(ctx, name)
}

// Remove decrements the quantity of name, deleting the item when its quantity
// is 1. Removing an absent item is a no-op.
func (s *InventoryService) Remove(ctx context.Context, name string) (*types.MutationResult, error) {
	item, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}

	switch {
	case item == nil:
	case item.Quantity <= 1:
		if err := s.deleteByName(ctx, name); err != nil {
			return nil, err
		}
	default:
		if err := s.setQuantity(ctx, name, item.Quantity-1); err != nil {
			return nil, err
		}
	}

	return s.refresh(ctx, name)
}

// Delete removes name regardless of quantity. Deleting an absent item is a no-op.
func (s *InventoryService) Delete(ctx context.Context, name string) (*types.MutationResult, error) {
	item, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}
	if item != nil {
		if err := s.deleteByName(ctx, name); err != nil {
			return nil, err
		}
	}
	return s.refresh(ctx, name)
}

// List returns every item in whatever order the database returns them
func (s *InventoryService) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	return items, nil
}

// Breakdown aggregates the inventory for the overview chart
func (s *InventoryService) Breakdown(ctx context.Context) (*types.Breakdown, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildBreakdown(items), nil
}

// BuildBreakdown computes each item's share of the total quantity
func BuildBreakdown(items []models.InventoryItem) *types.Breakdown {
	breakdown := &types.Breakdown{Slices: make([]types.BreakdownSlice, 0, len(items))}
	for _, item := range items {
		breakdown.Total += item.Quantity
	}
	for _, item := range items {
		slice := types.BreakdownSlice{Name: item.Name, Quantity: item.Quantity}
		if breakdown.Total > 0 {
			slice.Share = float64(item.Quantity) / float64(breakdown.Total)
		}
		breakdown.Slices = append(breakdown.Slices, slice)
	}
	return breakdown
}

// FilterItems keeps items whose name contains term, ignoring case
func FilterItems(items []models.InventoryItem, term string) []models.InventoryItem {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	filtered := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (s *InventoryService) find(ctx context.Context, name string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	result := s.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&item)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to read item %q: %w", name, result.Error)
	}
	// absent items are a normal path, not a logged gorm.ErrRecordNotFound
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &item, nil
}

func (s *InventoryService) setQuantity(ctx context.Context, name string, quantity int) error {
	err := s.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("name = ?", name).
		Update("quantity", quantity).Error
	if err != nil {
		return fmt.Errorf("failed to update item %q: %w", name, err)
	}
	return nil
}

func (s *InventoryService) deleteByName(ctx context.Context, name string) error {
	if err := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.InventoryItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete item %q: %w", name, err)
	}
	return nil
}

func (s *InventoryService) refresh(ctx context.Context, name string) (*types.MutationResult, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return &types.MutationResult{Name: name, Items: items}, nil
}
