package handlers

import (
	"errors"
	"net/http"

	"vermafarm/internal/adapter/http/dto/request"
	"vermafarm/internal/adapter/http/dto/response"
	"vermafarm/internal/usecase"
	"vermafarm/pkg"

	"github.com/gin-gonic/gin"
)

const inventoryComponent = "inventory"

var (
	errUpdatesNotArray = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Updates must be an array", http.StatusBadRequest)
)

type InventoryHandler struct {
	usecase usecase.IInventoryUseCase
}

func NewInventoryHandler(uc usecase.IInventoryUseCase) *InventoryHandler {
	return &InventoryHandler{usecase: uc}
}

func (h *InventoryHandler) List(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	items, total, err := h.usecase.List(c.Request.Context(), caller)
	if err != nil {
		abort(c, inventoryComponent, mapInventoryError(err))
		return
	}
	env := response.List(response.FromInventoryItems(items))
	env.TotalQuantity = &total
	c.JSON(http.StatusOK, env)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, inventoryComponent, invalidPayload("Quantity is required"))
		return
	}

	item, err := h.usecase.Update(c.Request.Context(), caller, c.Param("id"), *payload.Quantity, payload.Notes)
	if err != nil {
		abort(c, inventoryComponent, mapInventoryError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Inventory updated successfully", response.FromInventoryItem(item)))
}

// BulkUpdate skips items the caller does not own; data lists only the items
// that were written.
func (h *InventoryHandler) BulkUpdate(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.BulkUpdateInventoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, inventoryComponent, errUpdatesNotArray)
		return
	}

	items, err := h.usecase.BulkUpdate(c.Request.Context(), caller, payload.ToUpdates())
	if err != nil {
		abort(c, inventoryComponent, mapInventoryError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Inventory updated successfully", response.FromInventoryItems(items)))
}

func mapInventoryError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInventoryID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	}
	if appErr, ok := kindError(err); ok {
		return appErr
	}
	return internalError(err)
}
