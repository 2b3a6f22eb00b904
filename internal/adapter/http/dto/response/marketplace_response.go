package response

import (
	"time"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase"
)

type ListingResponse struct {
	ID                   string     `json:"id"`
	SellerID             string     `json:"sellerId"`
	Category             string     `json:"category"`
	ProductName          string     `json:"productName"`
	Description          string     `json:"description,omitempty"`
	QuantityAvailable    float64    `json:"quantityAvailable"`
	Unit                 string     `json:"unit"`
	PricePerUnit         float64    `json:"pricePerUnit"`
	Images               []string   `json:"images"`
	Status               string     `json:"status"`
	TotalSold            float64    `json:"totalSold"`
	QualityGrade         string     `json:"qualityGrade"`
	IsCertified          bool       `json:"isCertified"`
	CertificationDetails string     `json:"certificationDetails,omitempty"`
	PickupLocation       string     `json:"pickupLocation"`
	DeliveryAvailable    bool       `json:"deliveryAvailable"`
	DeliveryRadius       float64    `json:"deliveryRadius"`
	DeliveryCharge       float64    `json:"deliveryCharge"`
	Views                int        `json:"views"`
	Inquiries            int        `json:"inquiries"`
	AverageRating        float64    `json:"averageRating"`
	TotalReviews         int        `json:"totalReviews"`
	IsActive             bool       `json:"isActive"`
	TotalValue           float64    `json:"totalValue"`
	ExpiresAt            *time.Time `json:"expiresAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

func FromListing(l entities.Listing) ListingResponse {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return ListingResponse{
		ID:                   l.ID,
		SellerID:             l.SellerID,
		Category:             string(l.Category),
		ProductName:          l.ProductName,
		Description:          l.Description,
		QuantityAvailable:    l.QuantityAvailable,
		Unit:                 string(l.Unit),
		PricePerUnit:         l.PricePerUnit,
		Images:               images,
		Status:               string(l.Status),
		TotalSold:            l.TotalSold,
		QualityGrade:         string(l.QualityGrade),
		IsCertified:          l.IsCertified,
		CertificationDetails: l.CertificationDetails,
		PickupLocation:       l.PickupLocation,
		DeliveryAvailable:    l.DeliveryAvailable,
		DeliveryRadius:       l.DeliveryRadius,
		DeliveryCharge:       l.DeliveryCharge,
		Views:                l.Views,
		Inquiries:            l.Inquiries,
		AverageRating:        l.AverageRating,
		TotalReviews:         l.TotalReviews,
		IsActive:             l.IsActive,
		TotalValue:           l.TotalValue(),
		ExpiresAt:            l.ExpiresAt,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

func FromListings(ls []entities.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, FromListing(l))
	}
	return out
}

type TransactionResponse struct {
	ID              string    `json:"id"`
	BuyerID         string    `json:"buyerId"`
	SellerID        string    `json:"sellerId"`
	ListingID       string    `json:"listingId"`
	ProductName     string    `json:"productName"`
	Category        string    `json:"category"`
	Quantity        float64   `json:"quantity"`
	Unit            string    `json:"unit"`
	PricePerUnit    float64   `json:"pricePerUnit"`
	TotalAmount     float64   `json:"totalAmount"`
	DeliveryAddress string    `json:"deliveryAddress"`
	DeliveryCharge  float64   `json:"deliveryCharge"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromTransaction(t entities.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		BuyerID:         t.BuyerID,
		SellerID:        t.SellerID,
		ListingID:       t.ListingID,
		ProductName:     t.ProductName,
		Category:        string(t.Category),
		Quantity:        t.Quantity,
		Unit:            string(t.Unit),
		PricePerUnit:    t.PricePerUnit,
		TotalAmount:     t.TotalAmount,
		DeliveryAddress: t.DeliveryAddress,
		DeliveryCharge:  t.DeliveryCharge,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func FromTransactions(ts []entities.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTransaction(t))
	}
	return out
}

// PurchaseResponse pairs the recorded transaction with the listing's
// remaining stock.
type PurchaseResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Listing     ListingResponse     `json:"listing"`
}

type SellerInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

type ProductInfo struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
	Available float64 `json:"available"`
}

type SellerContactResponse struct {
	Seller  SellerInfo  `json:"seller"`
	Product ProductInfo `json:"product"`
}

func FromSellerContact(c usecase.SellerContact) SellerContactResponse {
	return SellerContactResponse{
		Seller: SellerInfo{
			Name:     c.SellerName,
			Phone:    c.SellerPhone,
			Email:    c.SellerEmail,
			Location: c.SellerLocation,
		},
		Product: ProductInfo{
			Name:      c.ProductName,
			Price:     c.PricePerUnit,
			Unit:      string(c.Unit),
			Available: c.QuantityAvailable,
		},
	}
}
