package entities

import (
	"strings"
	"time"
)

type ListingStatus string

const (
	ListingStatusActive          ListingStatus = "active"
	ListingStatusSoldOut         ListingStatus = "sold_out"
	ListingStatusInactive        ListingStatus = "inactive"
	ListingStatusPendingApproval ListingStatus = "pending_approval"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusActive, ListingStatusSoldOut, ListingStatusInactive, ListingStatusPendingApproval:
		return true
	}
	return false
}

type QualityGrade string

const (
	QualityGradeA         QualityGrade = "A"
	QualityGradeB         QualityGrade = "B"
	QualityGradeC         QualityGrade = "C"
	QualityGradeNotGraded QualityGrade = "Not Graded"
)

func (g QualityGrade) Valid() bool {
	switch g {
	case QualityGradeA, QualityGradeB, QualityGradeC, QualityGradeNotGraded:
		return true
	}
	return false
}

const (
	MaxProductNameLength    = 100
	MaxDescriptionLength    = 1000
	MaxCertificationDetails = 500
)

var (
	ErrListingNotFound       = NewNotFoundError("Listing not found")
	ErrListingForbidden      = NewAuthorizationError("Not authorized to modify this listing")
	ErrListingZeroQuantity   = NewInvalidStateError("Cannot activate listing with zero quantity. Please update quantity first.")
	ErrListingNotPurchasable = NewInvalidStateError("Listing is not available for purchase")
	ErrInsufficientQuantity  = NewInvalidStateError("Requested quantity exceeds quantity available")
)

// Listing is a product offered on the public marketplace.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (seller_id-index): seller_id, created_at
//   - GSI (status-index): status, created_at
type Listing struct {
	ID                   string
	SellerID             string
	Category             InventoryType
	ProductName          string
	Description          string
	QuantityAvailable    float64
	Unit                 Unit
	PricePerUnit         float64
	Images               []string
	Status               ListingStatus
	TotalSold            float64
	QualityGrade         QualityGrade
	IsCertified          bool
	CertificationDetails string
	PickupLocation       string
	DeliveryAvailable    bool
	DeliveryRadius       float64
	DeliveryCharge       float64
	Views                int
	Inquiries            int
	AverageRating        float64
	TotalReviews         int
	IsActive             bool
	ExpiresAt            *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ApplyDefaults fills the fields a new listing does not need to carry.
func (l *Listing) ApplyDefaults() {
	if l.Unit == "" {
		l.Unit = UnitKg
	}
	if l.Status == "" {
		l.Status = ListingStatusActive
	}
	if l.QualityGrade == "" {
		l.QualityGrade = QualityGradeNotGraded
	}
	if l.Images == nil {
		l.Images = []string{}
	}
}

// Validate checks field ranges and enumerations.
func (l Listing) Validate() error {
	switch {
	case !l.Category.Valid():
		return NewValidationError("Invalid product category")
	case strings.TrimSpace(l.ProductName) == "":
		return NewValidationError("Product name is required")
	case len(l.ProductName) > MaxProductNameLength:
		return NewValidationError("Product name cannot exceed 100 characters")
	case len(l.Description) > MaxDescriptionLength:
		return NewValidationError("Description cannot exceed 1000 characters")
	case l.QuantityAvailable < 0:
		return NewValidationError("Quantity cannot be negative")
	case !l.Unit.Valid():
		return NewValidationError("Invalid unit")
	case l.PricePerUnit < 0:
		return NewValidationError("Price cannot be negative")
	case !l.Status.Valid():
		return NewValidationError("Invalid listing status")
	case !l.QualityGrade.Valid():
		return NewValidationError("Invalid quality grade")
	case len(l.CertificationDetails) > MaxCertificationDetails:
		return NewValidationError("Certification details cannot exceed 500 characters")
	case l.DeliveryRadius < 0 || l.DeliveryCharge < 0:
		return NewValidationError("Delivery values cannot be negative")
	}
	return nil
}

// SyncStockStatus keeps status in line with the available quantity:
// an empty listing is sold out and a restocked sold-out listing is active again.
func (l *Listing) SyncStockStatus() {
	if l.QuantityAvailable == 0 {
		l.Status = ListingStatusSoldOut
	} else if l.Status == ListingStatusSoldOut && l.QuantityAvailable > 0 {
		l.Status = ListingStatusActive
	}
}

// TotalValue is the value of the remaining stock.
func (l Listing) TotalValue() float64 {
	return l.QuantityAvailable * l.PricePerUnit
}

// Visible reports whether the listing shows up in the public catalogue.
func (l Listing) Visible() bool {
	return l.Status == ListingStatusActive && l.IsActive
}

// Activate puts a listing back on the public catalogue.
func (l *Listing) Activate(now time.Time) error {
	if l.QuantityAvailable == 0 {
		return ErrListingZeroQuantity
	}
	l.Status = ListingStatusActive
	l.IsActive = true
	l.UpdatedAt = now
	return nil
}

// Deactivate hides a listing from the public catalogue.
func (l *Listing) Deactivate(now time.Time) {
	l.Status = ListingStatusInactive
	l.IsActive = false
	l.UpdatedAt = now
}

// ListingFilter selects public listings. Zero values disable a filter.
type ListingFilter struct {
	Category InventoryType
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Sort     string
}

// Matches applies the non-status filters of f to l.
func (f ListingFilter) Matches(l Listing) bool {
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && l.PricePerUnit < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.PricePerUnit > *f.MaxPrice {
		return false
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		if !strings.Contains(strings.ToLower(l.ProductName), strings.ToLower(s)) {
			return false
		}
	}
	return true
}

// ListingTotals summarizes a seller's listings.
type ListingTotals struct {
	Active       int     `json:"active"`
	SoldOut      int     `json:"sold_out"`
	Inactive     int     `json:"inactive"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalSold    float64 `json:"total_sold"`
}

func SummarizeListings(listings []Listing) ListingTotals {
	var t ListingTotals
	for _, l := range listings {
		switch l.Status {
		case ListingStatusActive:
			t.Active++
		case ListingStatusSoldOut:
			t.SoldOut++
		case ListingStatusInactive:
			t.Inactive++
		}
		t.TotalRevenue += l.TotalSold * l.PricePerUnit
		t.TotalSold += l.TotalSold
	}
	return t
}

// CategoryStats aggregates the visible listings of one category.
type CategoryStats struct {
	Category      InventoryType `json:"_id"`
	Count         int           `json:"count"`
	AvgPrice      float64       `json:"avgPrice"`
	TotalQuantity float64       `json:"totalQuantity"`
	MinPrice      float64       `json:"minPrice"`
	MaxPrice      float64       `json:"maxPrice"`
}

// MarketplaceStats is the public overview of the catalogue.
type MarketplaceStats struct {
	Categories    []CategoryStats `json:"categories"`
	TotalListings int             `json:"totalListings"`
	TotalSellers  int             `json:"totalSellers"`
}
