package models

// InventoryCollection is the table backing the inventory document collection
const InventoryCollection = "inventory"

// InventoryItem is one pantry entry keyed by its case-sensitive name.
// Quantity is never stored below 1; an item that would reach 0 is deleted.
type InventoryItem struct {
	Name     string `gorm:"primaryKey;size:255" json:"name"`
	Quantity int    `gorm:"not null;check:quantity >= 1" json:"quantity"`
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return InventoryCollection
}

// InventoryNames returns the item names in list order
func InventoryNames(items []InventoryItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}
