package response

import (
	"time"

	"vermafarm/internal/domain/entities"
)

type InventoryItemResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	Icon        string    `json:"icon"`
	Notes       string    `json:"notes,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromInventoryItem(i entities.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:          i.ID,
		UserID:      i.UserID,
		Type:        string(i.Type),
		Name:        i.Name,
		Quantity:    i.Quantity,
		Unit:        string(i.Unit),
		Icon:        i.Icon,
		Notes:       i.Notes,
		LastUpdated: i.LastUpdated,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func FromInventoryItems(items []entities.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, FromInventoryItem(i))
	}
	return out
}
