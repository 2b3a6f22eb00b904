package handlers

import (
	"errors"
	"net/http"
	"strings"

	"vermafarm/internal/adapter/http/dto/request"
	"vermafarm/internal/adapter/http/dto/response"
	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase"
	"vermafarm/pkg"

	"github.com/gin-gonic/gin"
)

const marketplaceComponent = "marketplace"

// MarketplaceHandler serves the public catalogue and the seller and buyer
// operations on listings.
type MarketplaceHandler struct {
	usecase usecase.IMarketplaceUseCase
}

func NewMarketplaceHandler(uc usecase.IMarketplaceUseCase) *MarketplaceHandler {
	return &MarketplaceHandler{usecase: uc}
}

func (h *MarketplaceHandler) List(c *gin.Context) {
	var query request.ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abort(c, marketplaceComponent, invalidPayload("Invalid marketplace query"))
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		abort(c, marketplaceComponent, invalidPayload("minPrice and maxPrice must be non-negative numbers"))
		return
	}

	listings, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusOK, response.List(response.FromListings(listings)))
}

func (h *MarketplaceHandler) Stats(c *gin.Context) {
	stats, err := h.usecase.Stats(c.Request.Context())
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	if stats.Categories == nil {
		stats.Categories = []entities.CategoryStats{}
	}
	c.JSON(http.StatusOK, response.OK("", stats))
}

func (h *MarketplaceHandler) Get(c *gin.Context) {
	l, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromListing(l)))
}

func (h *MarketplaceHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.CreateListingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, marketplaceComponent, invalidPayload("Please provide a category and a product name"))
		return
	}

	l, err := h.usecase.Create(c.Request.Context(), caller, payload.ToListing())
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusCreated, response.OK("Product listed successfully on marketplace", response.FromListing(l)))
}

func (h *MarketplaceHandler) ListMine(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	status := entities.ListingStatus(strings.TrimSpace(c.Query("status")))

	listings, totals, err := h.usecase.ListMine(c.Request.Context(), caller, status)
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	env := response.List(response.FromListings(listings))
	env.Totals = &totals
	c.JSON(http.StatusOK, env)
}

func (h *MarketplaceHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.UpdateListingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, marketplaceComponent, invalidPayload("Invalid listing payload"))
		return
	}

	l, err := h.usecase.Update(c.Request.Context(), caller, c.Param("id"), payload.ToPatch())
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Listing updated successfully", response.FromListing(l)))
}

func (h *MarketplaceHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := h.usecase.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusOK, response.Empty("Listing deleted successfully"))
}

func (h *MarketplaceHandler) Activate(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	l, err := h.usecase.Activate(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Listing activated successfully", response.FromListing(l)))
}

func (h *MarketplaceHandler) Deactivate(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	l, err := h.usecase.Deactivate(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Listing deactivated successfully", response.FromListing(l)))
}

func (h *MarketplaceHandler) Contact(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	contact, err := h.usecase.Contact(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Seller contact information retrieved", response.FromSellerContact(contact)))
}

func (h *MarketplaceHandler) Purchase(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.PurchaseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, marketplaceComponent, invalidPayload("Please provide a positive quantity and a delivery address"))
		return
	}

	tx, l, err := h.usecase.Purchase(c.Request.Context(), caller, c.Param("id"), payload.ToInput())
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusCreated, response.OK("Purchase recorded successfully", response.PurchaseResponse{
		Transaction: response.FromTransaction(tx),
		Listing:     response.FromListing(l),
	}))
}

func (h *MarketplaceHandler) MyPurchases(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	txs, err := h.usecase.MyPurchases(c.Request.Context(), caller)
	if err != nil {
		abort(c, marketplaceComponent, mapMarketplaceError(err))
		return
	}
	c.JSON(http.StatusOK, response.List(response.FromTransactions(txs)))
}

func mapMarketplaceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, entities.ErrInsufficientQuantity):
		return pkg.NewDomainErrorSimple("INSUFFICIENT_QUANTITY", err.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrListingZeroQuantity):
		return pkg.NewDomainErrorSimple("ZERO_QUANTITY", err.Error(), http.StatusBadRequest)
	}
	if appErr, ok := kindError(err); ok {
		return appErr
	}
	return internalError(err)
}
