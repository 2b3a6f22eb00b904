package request

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase"
)

var ErrInvalidPriceFilter = errors.New("invalid price filter")

type CreateListingRequest struct {
	Category             string     `json:"category" binding:"required"`
	ProductName          string     `json:"productName" binding:"required"`
	Description          string     `json:"description"`
	QuantityAvailable    float64    `json:"quantityAvailable"`
	Unit                 string     `json:"unit"`
	PricePerUnit         float64    `json:"pricePerUnit"`
	Images               []string   `json:"images"`
	QualityGrade         string     `json:"qualityGrade"`
	IsCertified          bool       `json:"isCertified"`
	CertificationDetails string     `json:"certificationDetails"`
	PickupLocation       string     `json:"pickupLocation"`
	DeliveryAvailable    bool       `json:"deliveryAvailable"`
	DeliveryRadius       float64    `json:"deliveryRadius"`
	DeliveryCharge       float64    `json:"deliveryCharge"`
	ExpiresAt            *time.Time `json:"expiresAt"`
}

func (r CreateListingRequest) ToListing() entities.Listing {
	return entities.Listing{
		Category:             entities.InventoryType(strings.TrimSpace(r.Category)),
		ProductName:          strings.TrimSpace(r.ProductName),
		Description:          r.Description,
		QuantityAvailable:    r.QuantityAvailable,
		Unit:                 entities.Unit(strings.TrimSpace(r.Unit)),
		PricePerUnit:         r.PricePerUnit,
		Images:               r.Images,
		QualityGrade:         entities.QualityGrade(strings.TrimSpace(r.QualityGrade)),
		IsCertified:          r.IsCertified,
		CertificationDetails: r.CertificationDetails,
		PickupLocation:       strings.TrimSpace(r.PickupLocation),
		DeliveryAvailable:    r.DeliveryAvailable,
		DeliveryRadius:       r.DeliveryRadius,
		DeliveryCharge:       r.DeliveryCharge,
		ExpiresAt:            r.ExpiresAt,
	}
}

// UpdateListingRequest only touches the fields present in the body.
type UpdateListingRequest struct {
	Category             *string    `json:"category"`
	ProductName          *string    `json:"productName"`
	Description          *string    `json:"description"`
	QuantityAvailable    *float64   `json:"quantityAvailable"`
	Unit                 *string    `json:"unit"`
	PricePerUnit         *float64   `json:"pricePerUnit"`
	Images               []string   `json:"images"`
	QualityGrade         *string    `json:"qualityGrade"`
	IsCertified          *bool      `json:"isCertified"`
	CertificationDetails *string    `json:"certificationDetails"`
	PickupLocation       *string    `json:"pickupLocation"`
	DeliveryAvailable    *bool      `json:"deliveryAvailable"`
	DeliveryRadius       *float64   `json:"deliveryRadius"`
	DeliveryCharge       *float64   `json:"deliveryCharge"`
	ExpiresAt            *time.Time `json:"expiresAt"`
}

func (r UpdateListingRequest) ToPatch() usecase.ListingPatch {
	p := usecase.ListingPatch{
		ProductName:          r.ProductName,
		Description:          r.Description,
		QuantityAvailable:    r.QuantityAvailable,
		PricePerUnit:         r.PricePerUnit,
		Images:               r.Images,
		IsCertified:          r.IsCertified,
		CertificationDetails: r.CertificationDetails,
		PickupLocation:       r.PickupLocation,
		DeliveryAvailable:    r.DeliveryAvailable,
		DeliveryRadius:       r.DeliveryRadius,
		DeliveryCharge:       r.DeliveryCharge,
		ExpiresAt:            r.ExpiresAt,
	}
	if r.Category != nil {
		c := entities.InventoryType(strings.TrimSpace(*r.Category))
		p.Category = &c
	}
	if r.Unit != nil {
		u := entities.Unit(strings.TrimSpace(*r.Unit))
		p.Unit = &u
	}
	if r.QualityGrade != nil {
		g := entities.QualityGrade(strings.TrimSpace(*r.QualityGrade))
		p.QualityGrade = &g
	}
	return p
}

type PurchaseRequest struct {
	Quantity        float64 `json:"quantity" binding:"required,gt=0"`
	DeliveryAddress string  `json:"deliveryAddress" binding:"required"`
	WithDelivery    bool    `json:"withDelivery"`
}

func (r PurchaseRequest) ToInput() usecase.PurchaseInput {
	return usecase.PurchaseInput{
		Quantity:        r.Quantity,
		DeliveryAddress: strings.TrimSpace(r.DeliveryAddress),
		WithDelivery:    r.WithDelivery,
	}
}

// ListingQuery holds the public catalogue query string.
type ListingQuery struct {
	Category string `form:"category"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
	Search   string `form:"search"`
	Sort     string `form:"sort"`
}

func (q ListingQuery) ToFilter() (entities.ListingFilter, error) {
	f := entities.ListingFilter{
		Category: entities.InventoryType(strings.TrimSpace(q.Category)),
		Search:   strings.TrimSpace(q.Search),
		Sort:     strings.TrimSpace(q.Sort),
	}
	var err error
	if f.MinPrice, err = parsePrice(q.MinPrice); err != nil {
		return entities.ListingFilter{}, err
	}
	if f.MaxPrice, err = parsePrice(q.MaxPrice); err != nil {
		return entities.ListingFilter{}, err
	}
	return f, nil
}

func parsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, ErrInvalidPriceFilter
	}
	return &v, nil
}
