package interfaces

import (
	"context"

	"vermafarm/internal/domain/entities"
)

// IInventoryRepository abstracts DynamoDB persistence for InventoryItem.
type IInventoryRepository interface {
	CreateMany(ctx context.Context, items []entities.InventoryItem) error
	GetByID(ctx context.Context, id string) (entities.InventoryItem, error)
	ListByUser(ctx context.Context, userID string) ([]entities.InventoryItem, error)
	// UpdateQuantity only writes when the item belongs to ownerID.
	UpdateQuantity(ctx context.Context, id, ownerID string, quantity float64, notes *string) (entities.InventoryItem, error)
}
