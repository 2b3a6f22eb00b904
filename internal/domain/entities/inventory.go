package entities

import "time"

type InventoryType string

const (
	InventoryPoultryWaste InventoryType = "poultry_waste"
	InventoryCoconutHusk  InventoryType = "coconut_husk"
	InventoryDryLeaves    InventoryType = "dry_leaves"
	InventoryVermicompost InventoryType = "vermicompost"
)

func (t InventoryType) Valid() bool {
	switch t {
	case InventoryPoultryWaste, InventoryCoconutHusk, InventoryDryLeaves, InventoryVermicompost:
		return true
	}
	return false
}

const MaxInventoryNotes = 500

var ErrInventoryNotFound = NewNotFoundError("Inventory item not found")

// InventoryItem is the quantity of one material a farmer holds.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (user_id-index): user_id
type InventoryItem struct {
	ID          string
	UserID      string
	Type        InventoryType
	Name        string
	Quantity    float64
	Unit        Unit
	Icon        string
	Notes       string
	LastUpdated time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InventoryUpdate is one entry of a bulk inventory update.
type InventoryUpdate struct {
	ID       string
	Quantity float64
}

// StarterInventory is the set of empty items every new farmer gets.
func StarterInventory(userID string, newID func() string, now time.Time) []InventoryItem {
	seed := []struct {
		t    InventoryType
		name string
		icon string
	}{
		{InventoryPoultryWaste, "Poultry Waste", "🐔"},
		{InventoryCoconutHusk, "Coconut Husk", "🥥"},
		{InventoryDryLeaves, "Dry Leaves", "🍂"},
		{InventoryVermicompost, "Vermicompost", "🌱"},
	}
	items := make([]InventoryItem, 0, len(seed))
	for _, s := range seed {
		items = append(items, InventoryItem{
			ID:          newID(),
			UserID:      userID,
			Type:        s.t,
			Name:        s.name,
			Unit:        UnitKg,
			Icon:        s.icon,
			LastUpdated: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return items
}

// ValidateInventoryChange checks a quantity/notes update.
func ValidateInventoryChange(quantity float64, notes string) error {
	if quantity < 0 {
		return NewValidationError("Quantity cannot be negative")
	}
	if len(notes) > MaxInventoryNotes {
		return NewValidationError("Notes cannot exceed 500 characters")
	}
	return nil
}
