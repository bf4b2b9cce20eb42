package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pageza/pantry-tracker/backend/config"
	"github.com/pageza/pantry-tracker/backend/internal/database"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/service"
)

var defaultItems = []models.InventoryItem{
	{Name: "Milk", Quantity: 2},
	{Name: "Eggs", Quantity: 12},
	{Name: "Bread", Quantity: 1},
	{Name: "Apple", Quantity: 4},
	{Name: "Rice", Quantity: 1},
	{Name: "Tomato", Quantity: 3},
}

func main() {
	file := flag.String("file", "", "JSON file with [{\"name\":...,\"quantity\":...}] to seed (defaults to a starter pantry)")
	reset := flag.Bool("reset", false, "Delete every existing item before seeding")
	flag.Parse()

	items := defaultItems
	if *file != "" {
		loaded, err := loadItems(*file)
		if err != nil {
			log.Fatalf("Failed to load seed file: %v", err)
		}
		items = loaded
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	inventory := service.NewInventoryService(db)
	final, err := seed(context.Background(), inventory, items, *reset)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Printf("Inventory now holds %d items\n", len(final))
	for _, item := range final {
		fmt.Printf("  %-20s %d\n", item.Name, item.Quantity)
	}
}

func loadItems(path string) ([]models.InventoryItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []models.InventoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return items, nil
}

// seed adds each item through the store adapter, once per unit of quantity
func seed(ctx context.Context, inventory service.IInventoryService, items []models.InventoryItem, reset bool) ([]models.InventoryItem, error) {
	if reset {
		existing, err := inventory.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range existing {
			if _, err := inventory.Delete(ctx, item.Name); err != nil {
				return nil, err
			}
		}
	}

	for _, item := range items {
		if item.Quantity < 1 {
			log.Printf("Skipping %q: quantity %d is below 1", item.Name, item.Quantity)
			continue
		}
		for i := 0; i < item.Quantity; i++ {
			if _, err := inventory.Add(ctx, item.Name, false); err != nil {
				return nil, fmt.Errorf("failed to add %q: %w", item.Name, err)
			}
		}
		log.Printf("Seeded %s x%d", item.Name, item.Quantity)
	}

	return inventory.List(ctx)
}
