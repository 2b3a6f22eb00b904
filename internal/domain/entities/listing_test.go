package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() Listing {
	l := Listing{
		ID:                "l-1",
		SellerID:          "seller-1",
		Category:          InventoryVermicompost,
		ProductName:       "Premium Vermicompost",
		QuantityAvailable: 100,
		PricePerUnit:      12.5,
		IsActive:          true,
	}
	l.ApplyDefaults()
	return l
}

func TestListing_DefaultsAndValidate(t *testing.T) {
	l := validListing()
	assert.Equal(t, UnitKg, l.Unit)
	assert.Equal(t, ListingStatusActive, l.Status)
	assert.Equal(t, QualityGradeNotGraded, l.QualityGrade)
	assert.NotNil(t, l.Images)
	require.NoError(t, l.Validate())

	bad := validListing()
	bad.Category = "plastic"
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = validListing()
	bad.PricePerUnit = -1
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = validListing()
	bad.QualityGrade = "D"
	assert.ErrorIs(t, bad.Validate(), ErrValidation)
}

func TestListing_SyncStockStatus(t *testing.T) {
	l := validListing()
	l.QuantityAvailable = 0
	l.SyncStockStatus()
	assert.Equal(t, ListingStatusSoldOut, l.Status)

	l.QuantityAvailable = 5
	l.SyncStockStatus()
	assert.Equal(t, ListingStatusActive, l.Status)

	l.Status = ListingStatusInactive
	l.SyncStockStatus()
	assert.Equal(t, ListingStatusInactive, l.Status)
}

func TestListing_ActivateDeactivate(t *testing.T) {
	now := time.Now()
	l := validListing()
	l.Deactivate(now)
	assert.False(t, l.Visible())

	require.NoError(t, l.Activate(now))
	assert.True(t, l.Visible())

	l.QuantityAvailable = 0
	assert.ErrorIs(t, l.Activate(now), ErrListingZeroQuantity)
	assert.Equal(t, 1250.0, validListing().TotalValue())
}

func TestListingFilter_Matches(t *testing.T) {
	l := validListing()
	minP, maxP := 10.0, 12.0

	assert.True(t, ListingFilter{}.Matches(l))
	assert.True(t, ListingFilter{Category: InventoryVermicompost, Search: "premium"}.Matches(l))
	assert.False(t, ListingFilter{Category: InventoryDryLeaves}.Matches(l))
	assert.True(t, ListingFilter{MinPrice: &minP}.Matches(l))
	assert.False(t, ListingFilter{MaxPrice: &maxP}.Matches(l))
	assert.False(t, ListingFilter{Search: "husk"}.Matches(l))
}

func TestSummarizeListings(t *testing.T) {
	a := validListing()
	a.TotalSold = 10
	b := validListing()
	b.Status = ListingStatusSoldOut
	b.TotalSold = 4
	b.PricePerUnit = 10
	c := validListing()
	c.Status = ListingStatusInactive

	totals := SummarizeListings([]Listing{a, b, c})
	assert.Equal(t, ListingTotals{Active: 1, SoldOut: 1, Inactive: 1, TotalRevenue: 165, TotalSold: 14}, totals)
}

func TestNewPurchase(t *testing.T) {
	now := time.Now()
	l := validListing()
	l.DeliveryAvailable = true
	l.DeliveryCharge = 30

	tx, err := NewPurchase("tx-1", "buyer-1", l, 4, " Farm road 1 ", true, now)
	require.NoError(t, err)
	assert.Equal(t, 80.0, tx.TotalAmount)
	assert.Equal(t, "Farm road 1", tx.DeliveryAddress)
	assert.Equal(t, TransactionStatusPending, tx.Status)
	assert.Equal(t, "seller-1", tx.SellerID)

	_, err = NewPurchase("tx-1", "buyer-1", l, 101, "addr", false, now)
	assert.ErrorIs(t, err, ErrInsufficientQuantity)

	_, err = NewPurchase("tx-1", "buyer-1", l, 0, "addr", false, now)
	assert.ErrorIs(t, err, ErrValidation)

	l.Deactivate(now)
	_, err = NewPurchase("tx-1", "buyer-1", l, 1, "addr", false, now)
	assert.ErrorIs(t, err, ErrListingNotPurchasable)
}
