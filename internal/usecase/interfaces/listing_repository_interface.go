package interfaces

import (
	"context"
	"time"

	"vermafarm/internal/domain/entities"
)

// ListingCounter names a listing counter bumped on read paths.
type ListingCounter string

const (
	ListingCounterViews     ListingCounter = "views"
	ListingCounterInquiries ListingCounter = "inquiries"
)

// IListingRepository abstracts DynamoDB persistence for Listing.
//
// Update, Delete and SetActive are conditional on the seller; ReserveStock is
// conditional on enough quantity being available. ReleaseStock gives back a
// reservation whose purchase could not be recorded. A failed condition returns
// an empty Listing and no error.
type IListingRepository interface {
	Create(ctx context.Context, l entities.Listing) (entities.Listing, error)
	GetByID(ctx context.Context, id string) (entities.Listing, error)
	Update(ctx context.Context, l entities.Listing) (entities.Listing, error)
	Delete(ctx context.Context, id, sellerID string) (bool, error)
	ListVisible(ctx context.Context) ([]entities.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]entities.Listing, error)
	IncrementCounter(ctx context.Context, id string, counter ListingCounter) (entities.Listing, error)
	ReserveStock(ctx context.Context, id string, quantity float64, now time.Time) (entities.Listing, error)
	ReleaseStock(ctx context.Context, id string, quantity float64, now time.Time) (entities.Listing, error)
}
