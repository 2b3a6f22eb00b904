package entities

import (
	"strings"
	"time"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction records a buyer's purchase from a listing. Payment is handled
// outside this service; a transaction starts pending.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (buyer_id-index): buyer_id, created_at
type Transaction struct {
	ID              string
	BuyerID         string
	SellerID        string
	ListingID       string
	ProductName     string
	Category        InventoryType
	Quantity        float64
	Unit            Unit
	PricePerUnit    float64
	TotalAmount     float64
	DeliveryAddress string
	DeliveryCharge  float64
	Status          TransactionStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPurchase prices a purchase of quantity units from l.
func NewPurchase(id, buyerID string, l Listing, quantity float64, deliveryAddress string, withDelivery bool, now time.Time) (Transaction, error) {
	if quantity <= 0 {
		return Transaction{}, NewValidationError("Quantity must be positive")
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		return Transaction{}, NewValidationError("Delivery address is required")
	}
	if !l.Visible() {
		return Transaction{}, ErrListingNotPurchasable
	}
	if quantity > l.QuantityAvailable {
		return Transaction{}, ErrInsufficientQuantity
	}
	if withDelivery && !l.DeliveryAvailable {
		return Transaction{}, NewValidationError("Delivery is not available for this listing")
	}

	var delivery float64
	if withDelivery {
		delivery = l.DeliveryCharge
	}
	return Transaction{
		ID:              id,
		BuyerID:         buyerID,
		SellerID:        l.SellerID,
		ListingID:       l.ID,
		ProductName:     l.ProductName,
		Category:        l.Category,
		Quantity:        quantity,
		Unit:            l.Unit,
		PricePerUnit:    l.PricePerUnit,
		TotalAmount:     quantity*l.PricePerUnit + delivery,
		DeliveryAddress: strings.TrimSpace(deliveryAddress),
		DeliveryCharge:  delivery,
		Status:          TransactionStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
