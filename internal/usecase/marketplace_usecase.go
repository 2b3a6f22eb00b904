package usecase

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/infrastructure/metrics"
	"vermafarm/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSellerOnly         = entities.NewAuthorizationError("Only farmers and land owners can sell on the marketplace")
	ErrBuyerOnly          = entities.NewAuthorizationError("Only buyers can purchase listings")
	ErrInvalidListingID   = entities.NewValidationError("Invalid listing id")
	ErrInvalidListingStat = entities.NewValidationError("Invalid listing status")
)

const (
	SortNewest    = "-createdAt"
	SortOldest    = "createdAt"
	SortPriceAsc  = "pricePerUnit"
	SortPriceDesc = "-pricePerUnit"
)

// ListingPatch carries the listing fields a seller may change. Nil fields are
// left untouched.
type ListingPatch struct {
	Category             *entities.InventoryType
	ProductName          *string
	Description          *string
	QuantityAvailable    *float64
	Unit                 *entities.Unit
	PricePerUnit         *float64
	Images               []string
	QualityGrade         *entities.QualityGrade
	IsCertified          *bool
	CertificationDetails *string
	PickupLocation       *string
	DeliveryAvailable    *bool
	DeliveryRadius       *float64
	DeliveryCharge       *float64
	ExpiresAt            *time.Time
}

// SellerContact is what a prospective buyer learns when contacting a seller.
type SellerContact struct {
	SellerName        string
	SellerEmail       string
	SellerPhone       string
	SellerLocation    string
	ProductName       string
	PricePerUnit      float64
	QuantityAvailable float64
	Unit              entities.Unit
}

type PurchaseInput struct {
	Quantity        float64
	DeliveryAddress string
	WithDelivery    bool
}

// IMarketplaceUseCase exposes the public catalogue and seller/buyer operations.
type IMarketplaceUseCase interface {
	List(ctx context.Context, filter entities.ListingFilter) ([]entities.Listing, error)
	Get(ctx context.Context, id string) (entities.Listing, error)
	Stats(ctx context.Context) (entities.MarketplaceStats, error)
	Create(ctx context.Context, caller entities.Caller, l entities.Listing) (entities.Listing, error)
	ListMine(ctx context.Context, caller entities.Caller, status entities.ListingStatus) ([]entities.Listing, entities.ListingTotals, error)
	Update(ctx context.Context, caller entities.Caller, id string, patch ListingPatch) (entities.Listing, error)
	Delete(ctx context.Context, caller entities.Caller, id string) error
	Activate(ctx context.Context, caller entities.Caller, id string) (entities.Listing, error)
	Deactivate(ctx context.Context, caller entities.Caller, id string) (entities.Listing, error)
	Contact(ctx context.Context, caller entities.Caller, id string) (SellerContact, error)
	Purchase(ctx context.Context, caller entities.Caller, id string, in PurchaseInput) (entities.Transaction, entities.Listing, error)
	MyPurchases(ctx context.Context, caller entities.Caller) ([]entities.Transaction, error)
}

type MarketplaceUseCase struct {
	listings     interfaces.IListingRepository
	transactions interfaces.ITransactionRepository
	users        interfaces.IUserRepository
	now          func() time.Time
}

var _ IMarketplaceUseCase = (*MarketplaceUseCase)(nil)

func NewMarketplaceUseCase(
	listings interfaces.IListingRepository,
	transactions interfaces.ITransactionRepository,
	users interfaces.IUserRepository,
) *MarketplaceUseCase {
	return &MarketplaceUseCase{
		listings:     listings,
		transactions: transactions,
		users:        users,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *MarketplaceUseCase) List(ctx context.Context, filter entities.ListingFilter) ([]entities.Listing, error) {
	all, err := u.listings.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Listing, 0, len(all))
	for _, l := range all {
		if l.Visible() && filter.Matches(l) {
			out = append(out, l)
		}
	}
	sortListings(out, filter.Sort)
	return out, nil
}

// Get returns a listing and counts the view.
func (u *MarketplaceUseCase) Get(ctx context.Context, id string) (entities.Listing, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Listing{}, ErrInvalidListingID
	}
	l, err := u.listings.IncrementCounter(ctx, id, interfaces.ListingCounterViews)
	if err != nil {
		return entities.Listing{}, err
	}
	if l.ID == "" {
		return entities.Listing{}, entities.ErrListingNotFound
	}
	return l, nil
}

func (u *MarketplaceUseCase) Stats(ctx context.Context) (entities.MarketplaceStats, error) {
	all, err := u.listings.ListVisible(ctx)
	if err != nil {
		return entities.MarketplaceStats{}, err
	}

	byCategory := map[entities.InventoryType]*entities.CategoryStats{}
	sellers := map[string]struct{}{}
	total := 0
	for _, l := range all {
		if !l.Visible() {
			continue
		}
		total++
		sellers[l.SellerID] = struct{}{}

		cs, ok := byCategory[l.Category]
		if !ok {
			cs = &entities.CategoryStats{Category: l.Category, MinPrice: l.PricePerUnit, MaxPrice: l.PricePerUnit}
			byCategory[l.Category] = cs
		}
		cs.Count++
		cs.AvgPrice += l.PricePerUnit
		cs.TotalQuantity += l.QuantityAvailable
		cs.MinPrice = min(cs.MinPrice, l.PricePerUnit)
		cs.MaxPrice = max(cs.MaxPrice, l.PricePerUnit)
	}

	categories := make([]entities.CategoryStats, 0, len(byCategory))
	for _, cs := range byCategory {
		cs.AvgPrice /= float64(cs.Count)
		categories = append(categories, *cs)
	}
	slices.SortFunc(categories, func(a, b entities.CategoryStats) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(string(a.Category), string(b.Category))
	})

	return entities.MarketplaceStats{
		Categories:    categories,
		TotalListings: total,
		TotalSellers:  len(sellers),
	}, nil
}

func (u *MarketplaceUseCase) Create(ctx context.Context, caller entities.Caller, l entities.Listing) (entities.Listing, error) {
	stat, err := sellerSalesStat(caller)
	if err != nil {
		return entities.Listing{}, err
	}

	if strings.TrimSpace(l.PickupLocation) == "" {
		seller, err := u.users.GetByID(ctx, caller.UserID)
		if err != nil {
			return entities.Listing{}, err
		}
		l.PickupLocation = seller.Location
	}

	now := u.now()
	l.ID = uuid.NewString()
	l.SellerID = caller.UserID
	l.Status = ""
	l.TotalSold, l.Views, l.Inquiries, l.AverageRating, l.TotalReviews = 0, 0, 0, 0, 0
	l.IsActive = true
	l.CreatedAt, l.UpdatedAt = now, now
	l.ApplyDefaults()
	l.SyncStockStatus()
	if err := l.Validate(); err != nil {
		return entities.Listing{}, err
	}

	created, err := u.listings.Create(ctx, l)
	if err != nil {
		return entities.Listing{}, err
	}
	if err := u.users.IncrementStats(ctx, caller.UserID, entities.StatDeltas{stat: 1}); err != nil {
		logrus.WithError(err).WithField("user_id", caller.UserID).
			Warn("[marketplace][usecase] failed to bump seller sales counter")
	}
	logrus.WithFields(logrus.Fields{
		"listing_id": created.ID,
		"seller_id":  created.SellerID,
		"category":   created.Category,
	}).Info("[marketplace][usecase] listing created")
	return created, nil
}

// ListMine returns the caller's listings, optionally filtered by status. The
// totals always cover every listing of the seller.
func (u *MarketplaceUseCase) ListMine(ctx context.Context, caller entities.Caller, status entities.ListingStatus) ([]entities.Listing, entities.ListingTotals, error) {
	if _, err := sellerSalesStat(caller); err != nil {
		return nil, entities.ListingTotals{}, err
	}
	if status != "" && !status.Valid() {
		return nil, entities.ListingTotals{}, ErrInvalidListingStat
	}

	all, err := u.listings.ListBySeller(ctx, caller.UserID)
	if err != nil {
		return nil, entities.ListingTotals{}, err
	}
	totals := entities.SummarizeListings(all)

	out := make([]entities.Listing, 0, len(all))
	for _, l := range all {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	sortListings(out, SortNewest)
	return out, totals, nil
}

func (u *MarketplaceUseCase) Update(ctx context.Context, caller entities.Caller, id string, patch ListingPatch) (entities.Listing, error) {
	l, err := u.owned(ctx, caller, id)
	if err != nil {
		return entities.Listing{}, err
	}

	patch.apply(&l)
	l.SyncStockStatus()
	if err := l.Validate(); err != nil {
		return entities.Listing{}, err
	}
	l.UpdatedAt = u.now()
	return u.save(ctx, l)
}

func (u *MarketplaceUseCase) Delete(ctx context.Context, caller entities.Caller, id string) error {
	l, err := u.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	deleted, err := u.listings.Delete(ctx, l.ID, caller.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return entities.ErrListingNotFound
	}
	logrus.WithField("listing_id", l.ID).Info("[marketplace][usecase] listing deleted")
	return nil
}

func (u *MarketplaceUseCase) Activate(ctx context.Context, caller entities.Caller, id string) (entities.Listing, error) {
	l, err := u.owned(ctx, caller, id)
	if err != nil {
		return entities.Listing{}, err
	}
	if err := l.Activate(u.now()); err != nil {
		return entities.Listing{}, err
	}
	return u.save(ctx, l)
}

func (u *MarketplaceUseCase) Deactivate(ctx context.Context, caller entities.Caller, id string) (entities.Listing, error) {
	l, err := u.owned(ctx, caller, id)
	if err != nil {
		return entities.Listing{}, err
	}
	l.Deactivate(u.now())
	return u.save(ctx, l)
}

// Contact counts an inquiry and returns the seller's contact details.
func (u *MarketplaceUseCase) Contact(ctx context.Context, caller entities.Caller, id string) (SellerContact, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return SellerContact{}, ErrInvalidListingID
	}
	l, err := u.listings.IncrementCounter(ctx, id, interfaces.ListingCounterInquiries)
	if err != nil {
		return SellerContact{}, err
	}
	if l.ID == "" {
		return SellerContact{}, entities.ErrListingNotFound
	}

	seller, err := u.users.GetByID(ctx, l.SellerID)
	if err != nil {
		return SellerContact{}, err
	}
	if seller.ID == "" {
		return SellerContact{}, ErrUserNotFound
	}

	logrus.WithFields(logrus.Fields{
		"listing_id": l.ID,
		"user_id":    caller.UserID,
	}).Info("[marketplace][usecase] seller contacted")
	return SellerContact{
		SellerName:        seller.Name,
		SellerEmail:       seller.Email,
		SellerPhone:       seller.Phone,
		SellerLocation:    seller.Location,
		ProductName:       l.ProductName,
		PricePerUnit:      l.PricePerUnit,
		QuantityAvailable: l.QuantityAvailable,
		Unit:              l.Unit,
	}, nil
}

// Purchase reserves stock atomically and records a pending transaction.
func (u *MarketplaceUseCase) Purchase(ctx context.Context, caller entities.Caller, id string, in PurchaseInput) (entities.Transaction, entities.Listing, error) {
	if caller.UserType != entities.UserTypeBuyer {
		return entities.Transaction{}, entities.Listing{}, ErrBuyerOnly
	}
	l, err := u.load(ctx, id)
	if err != nil {
		return entities.Transaction{}, entities.Listing{}, err
	}

	now := u.now()
	tx, err := entities.NewPurchase(uuid.NewString(), caller.UserID, l, in.Quantity, in.DeliveryAddress, in.WithDelivery, now)
	if err != nil {
		return entities.Transaction{}, entities.Listing{}, err
	}

	reserved, err := u.listings.ReserveStock(ctx, l.ID, tx.Quantity, now)
	if err != nil {
		metrics.RecordPurchase(metrics.OutcomeError)
		return entities.Transaction{}, entities.Listing{}, err
	}
	if reserved.ID == "" {
		metrics.RecordPurchase(metrics.OutcomeRejected)
		return entities.Transaction{}, entities.Listing{}, entities.ErrInsufficientQuantity
	}

	created, err := u.transactions.Create(ctx, tx)
	if err != nil {
		metrics.RecordPurchase(metrics.OutcomeError)
		u.releaseReservation(ctx, tx)
		return entities.Transaction{}, entities.Listing{}, err
	}
	metrics.RecordPurchase(metrics.OutcomeOK)

	deltas := entities.StatDeltas{
		entities.StatBuyerTotalPurchases: 1,
		entities.StatBuyerSpent:          created.TotalAmount,
		entities.StatBuyerActiveOrders:   1,
	}
	if err := u.users.IncrementStats(ctx, caller.UserID, deltas); err != nil {
		logrus.WithError(err).WithField("user_id", caller.UserID).
			Error("[marketplace][usecase] failed to apply buyer counters")
	}
	logrus.WithFields(logrus.Fields{
		"transaction_id": created.ID,
		"listing_id":     l.ID,
		"buyer_id":       caller.UserID,
		"quantity":       created.Quantity,
		"total":          created.TotalAmount,
	}).Info("[marketplace][usecase] purchase recorded")
	return created, reserved, nil
}

// releaseReservation puts back the stock of a purchase whose transaction was
// never written.
func (u *MarketplaceUseCase) releaseReservation(ctx context.Context, tx entities.Transaction) {
	fields := logrus.Fields{
		"listing_id": tx.ListingID,
		"buyer_id":   tx.BuyerID,
		"quantity":   tx.Quantity,
	}
	released, err := u.listings.ReleaseStock(ctx, tx.ListingID, tx.Quantity, u.now())
	if err != nil {
		logrus.WithError(err).WithFields(fields).Error("[marketplace][usecase] failed to release reserved stock")
		return
	}
	if released.ID == "" {
		logrus.WithFields(fields).Error("[marketplace][usecase] reserved stock was already released")
		return
	}
	logrus.WithFields(fields).Warn("[marketplace][usecase] purchase not recorded, stock released")
}

// MyPurchases lists the buyer's transactions, newest first.
func (u *MarketplaceUseCase) MyPurchases(ctx context.Context, caller entities.Caller) ([]entities.Transaction, error) {
	if caller.UserType != entities.UserTypeBuyer {
		return nil, ErrBuyerOnly
	}
	txs, err := u.transactions.ListByBuyer(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(txs, func(a, b entities.Transaction) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return txs, nil
}

func (u *MarketplaceUseCase) load(ctx context.Context, id string) (entities.Listing, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Listing{}, ErrInvalidListingID
	}
	l, err := u.listings.GetByID(ctx, id)
	if err != nil {
		return entities.Listing{}, err
	}
	if l.ID == "" {
		return entities.Listing{}, entities.ErrListingNotFound
	}
	return l, nil
}

func (u *MarketplaceUseCase) owned(ctx context.Context, caller entities.Caller, id string) (entities.Listing, error) {
	l, err := u.load(ctx, id)
	if err != nil {
		return entities.Listing{}, err
	}
	if l.SellerID != caller.UserID {
		return entities.Listing{}, entities.ErrListingForbidden
	}
	return l, nil
}

func (u *MarketplaceUseCase) save(ctx context.Context, l entities.Listing) (entities.Listing, error) {
	updated, err := u.listings.Update(ctx, l)
	if err != nil {
		return entities.Listing{}, err
	}
	if updated.ID == "" {
		return entities.Listing{}, entities.ErrListingNotFound
	}
	return updated, nil
}

func (p ListingPatch) apply(l *entities.Listing) {
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.ProductName != nil {
		l.ProductName = strings.TrimSpace(*p.ProductName)
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.QuantityAvailable != nil {
		l.QuantityAvailable = *p.QuantityAvailable
	}
	if p.Unit != nil {
		l.Unit = *p.Unit
	}
	if p.PricePerUnit != nil {
		l.PricePerUnit = *p.PricePerUnit
	}
	if p.Images != nil {
		l.Images = p.Images
	}
	if p.QualityGrade != nil {
		l.QualityGrade = *p.QualityGrade
	}
	if p.IsCertified != nil {
		l.IsCertified = *p.IsCertified
	}
	if p.CertificationDetails != nil {
		l.CertificationDetails = *p.CertificationDetails
	}
	if p.PickupLocation != nil {
		l.PickupLocation = strings.TrimSpace(*p.PickupLocation)
	}
	if p.DeliveryAvailable != nil {
		l.DeliveryAvailable = *p.DeliveryAvailable
	}
	if p.DeliveryRadius != nil {
		l.DeliveryRadius = *p.DeliveryRadius
	}
	if p.DeliveryCharge != nil {
		l.DeliveryCharge = *p.DeliveryCharge
	}
	if p.ExpiresAt != nil {
		l.ExpiresAt = p.ExpiresAt
	}
}

func sellerSalesStat(caller entities.Caller) (entities.StatField, error) {
	switch caller.UserType {
	case entities.UserTypeFarmer:
		return entities.StatFarmerTotalSales, nil
	case entities.UserTypeLandowner:
		return entities.StatLandownerTotalSales, nil
	}
	return "", ErrSellerOnly
}

func sortListings(items []entities.Listing, order string) {
	var by func(a, b entities.Listing) int
	switch order {
	case SortOldest:
		by = func(a, b entities.Listing) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortPriceAsc:
		by = func(a, b entities.Listing) int { return cmp.Compare(a.PricePerUnit, b.PricePerUnit) }
	case SortPriceDesc:
		by = func(a, b entities.Listing) int { return cmp.Compare(b.PricePerUnit, a.PricePerUnit) }
	default:
		by = func(a, b entities.Listing) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
	slices.SortStableFunc(items, by)
}
