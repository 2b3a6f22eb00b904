package request

import "vermafarm/internal/domain/entities"

type UpdateInventoryRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
	Notes    *string  `json:"notes"`
}

type InventoryUpdateEntry struct {
	ID       string  `json:"id" binding:"required"`
	Quantity float64 `json:"quantity"`
}

// BulkUpdateInventoryRequest fails to bind when updates is not a JSON array.
type BulkUpdateInventoryRequest struct {
	Updates []InventoryUpdateEntry `json:"updates" binding:"required,dive"`
}

func (r BulkUpdateInventoryRequest) ToUpdates() []entities.InventoryUpdate {
	out := make([]entities.InventoryUpdate, 0, len(r.Updates))
	for _, u := range r.Updates {
		out = append(out, entities.InventoryUpdate{ID: u.ID, Quantity: u.Quantity})
	}
	return out
}
