package service

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/pantry-tracker/backend/internal/models"
)

func setupInventoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	return setupInventoryDBWithLogger(t, logger.Default.LogMode(logger.Silent))
}

func setupInventoryDBWithLogger(t *testing.T, gormLogger logger.Interface) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger,
	})
	require.NoError(t, err)

	// every pooled connection would otherwise get its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.InventoryItem{}))
	return db
}

func seedItems(t *testing.T, db *gorm.DB, items ...models.InventoryItem) {
	t.Helper()
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}
}

func quantities(items []models.InventoryItem) map[string]int {
	out := make(map[string]int, len(items))
	for _, item := range items {
		out[item.Name] = item.Quantity
	}
	return out
}

func TestInventoryService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("creates absent item with quantity 1", func(t *testing.T) {
		svc := NewInventoryService(setupInventoryDB(t))

		result, err := svc.Add(ctx, "Eggs", false)
		require.NoError(t, err)
		assert.Equal(t, "Eggs", result.Name)
		assert.Equal(t, []models.InventoryItem{{Name: "Eggs", Quantity: 1}}, result.Items)
	})

	t.Run("increments existing item", func(t *testing.T) {
		db := setupInventoryDB(t)
		seedItems(t, db, models.InventoryItem{Name: "Milk", Quantity: 2})
		svc := NewInventoryService(db)

		result, err := svc.Add(ctx, "Milk", false)
		require.NoError(t, err)
		assert.Equal(t, []models.InventoryItem{{Name: "Milk", Quantity: 3}}, result.Items)
	})

	t.Run("manual names are not reconciled", func(t *testing.T) {
		db := setupInventoryDB(t)
		seedItems(t, db, models.InventoryItem{Name: "Apple", Quantity: 1})
		svc := NewInventoryService(db)

		result, err := svc.Add(ctx, "red apple", false)
		require.NoError(t, err)
		assert.Equal(t, "red apple", result.Name)
		assert.Equal(t, map[string]int{"Apple": 1, "red apple": 1}, quantities(result.Items))
	})

	t.Run("camera labels are reconciled onto existing names", func(t *testing.T) {
		db := setupInventoryDB(t)
		seedItems(t, db, models.InventoryItem{Name: "Apple", Quantity: 1})
		svc := NewInventoryService(db)

		result, err := svc.Add(ctx, "red apple", true)
		require.NoError(t, err)
		assert.Equal(t, "Apple", result.Name)
		assert.Equal(t, []models.InventoryItem{{Name: "Apple", Quantity: 2}}, result.Items)
	})

	t.Run("camera label without a match is created", func(t *testing.T) {
		db := setupInventoryDB(t)
		seedItems(t, db, models.InventoryItem{Name: "Milk", Quantity: 1})
		svc := NewInventoryService(db)

		result, err := svc.Add(ctx, "banana", true)
		require.NoError(t, err)
		assert.Equal(t, "banana", result.Name)
		assert.Equal(t, map[string]int{"Milk": 1, "banana": 1}, quantities(result.Items))
	})

	t.Run("names are case-sensitive keys", func(t *testing.T) {
		svc := NewInventoryService(setupInventoryDB(t))

		_, err := svc.Add(ctx, "milk", false)
		require.NoError(t, err)
		result, err := svc.Add(ctx, "Milk", false)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"milk": 1, "Milk": 1}, quantities(result.Items))
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc := NewInventoryService(setupInventoryDB(t))

		result, err := svc.Add(ctx, "   ", false)
		assert.ErrorIs(t, err, ErrInvalidItemName)
		assert.Nil(t, result)

		items, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestInventoryService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements quantity above 1", func(t *testing.T) {
		db := setupInventoryDB(t)
		seedItems(t, db, models.InventoryItem{Name: "Bread", Quantity: 3})
		svc := NewInventoryService(db)

		result, err := svc.Remove(ctx, "Bread")
		require.NoError(t, err)
		assert.Equal(t, []models.InventoryItem{{Name: "Bread", Quantity: 2}}, result.Items)
	})

	t.Run("deletes item at quantity 1", func(t *testing.T) {
		db := setupInventoryDB(t)
		seedItems(t, db,
			models.InventoryItem{Name: "Bread", Quantity: 1},
			models.InventoryItem{Name: "Milk", Quantity: 4},
		)
		svc := NewInventoryService(db)

		result, err := svc.Remove(ctx, "Bread")
		require.NoError(t, err)
		assert.Equal(t, []models.InventoryItem{{Name: "Milk", Quantity: 4}}, result.Items)
	})

	t.Run("absent item is a no-op", func(t *testing.T) {
		db := setupInventoryDB(t)
		seedItems(t, db, models.InventoryItem{Name: "Milk", Quantity: 4})
		svc := NewInventoryService(db)

		result, err := svc.Remove(ctx, "Cheese")
		require.NoError(t, err)
		assert.Equal(t, []models.InventoryItem{{Name: "Milk", Quantity: 4}}, result.Items)
	})
}

func TestInventoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes item regardless of quantity", func(t *testing.T) {
		db := setupInventoryDB(t)
		seedItems(t, db, models.InventoryItem{Name: "Rice", Quantity: 7})
		svc := NewInventoryService(db)

		result, err := svc.Delete(ctx, "Rice")
		require.NoError(t, err)
		assert.Equal(t, "Rice", result.Name)
		assert.Empty(t, result.Items)
		assert.NotNil(t, result.Items)
	})

	t.Run("absent item is a no-op", func(t *testing.T) {
		db := setupInventoryDB(t)
		seedItems(t, db, models.InventoryItem{Name: "Rice", Quantity: 7})
		svc := NewInventoryService(db)

		result, err := svc.Delete(ctx, "Beans")
		require.NoError(t, err)
		assert.Equal(t, []models.InventoryItem{{Name: "Rice", Quantity: 7}}, result.Items)
	})
}

func TestInventoryService_AddRemoveRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupInventoryDB(t)
	seedItems(t, db, models.InventoryItem{Name: "Milk", Quantity: 2})
	svc := NewInventoryService(db)

	result, err := svc.Add(ctx, "Milk", false)
	require.NoError(t, err)
	assert.Equal(t, []models.InventoryItem{{Name: "Milk", Quantity: 3}}, result.Items)

	result, err = svc.Remove(ctx, "Milk")
	require.NoError(t, err)
	assert.Equal(t, []models.InventoryItem{{Name: "Milk", Quantity: 2}}, result.Items)

	result, err = svc.Remove(ctx, "Milk")
	require.NoError(t, err)
	assert.Equal(t, []models.InventoryItem{{Name: "Milk", Quantity: 1}}, result.Items)

	result, err = svc.Remove(ctx, "Milk")
	require.NoError(t, err)
	assert.Empty(t, result.Items)

	t.Run("quantity never drops below 1", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := svc.Add(ctx, "Salt", false)
			require.NoError(t, err)
		}
		for i := 0; i < 5; i++ {
			result, err := svc.Remove(ctx, "Salt")
			require.NoError(t, err)
			for _, item := range result.Items {
				assert.GreaterOrEqual(t, item.Quantity, 1)
			}
		}
		items, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestInventoryService_ListAndBreakdown(t *testing.T) {
	ctx := context.Background()
	db := setupInventoryDB(t)
	svc := NewInventoryService(db)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	breakdown, err := svc.Breakdown(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, breakdown.Total)
	assert.Empty(t, breakdown.Slices)

	seedItems(t, db,
		models.InventoryItem{Name: "Apple", Quantity: 3},
		models.InventoryItem{Name: "Milk", Quantity: 1},
	)

	breakdown, err = svc.Breakdown(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, breakdown.Total)
	require.Len(t, breakdown.Slices, 2)

	shares := map[string]float64{}
	for _, slice := range breakdown.Slices {
		shares[slice.Name] = slice.Share
	}
	assert.InDelta(t, 0.75, shares["Apple"], 1e-9)
	assert.InDelta(t, 0.25, shares["Milk"], 1e-9)
}

func TestFilterItems(t *testing.T) {
	items := []models.InventoryItem{
		{Name: "Green Apple", Quantity: 2},
		{Name: "Milk", Quantity: 1},
		{Name: "apple juice", Quantity: 1},
	}

	assert.Equal(t, items, FilterItems(items, ""))
	assert.Equal(t, items, FilterItems(items, "   "))
	assert.Equal(t, []models.InventoryItem{
		{Name: "Green Apple", Quantity: 2},
		{Name: "apple juice", Quantity: 1},
	}, FilterItems(items, "APPLE"))
	assert.Empty(t, FilterItems(items, "cheese"))
}

func TestInventoryService_AbsentItemsAreNotLogged(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	db := setupInventoryDBWithLogger(t, logger.New(log.New(&buf, "", 0), logger.Config{
		LogLevel: logger.Warn,
		Colorful: false,
	}))
	svc := NewInventoryService(db)

	_, err := svc.Add(ctx, "Eggs", false)
	require.NoError(t, err)
	_, err = svc.Remove(ctx, "Bread")
	require.NoError(t, err)
	_, err = svc.Delete(ctx, "Cheese")
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "record not found")
	assert.Empty(t, buf.String())
}
