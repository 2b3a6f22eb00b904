package routes

import (
	"vermafarm/internal/adapter/http/handlers"
	"vermafarm/internal/adapter/http/middleware"
	"vermafarm/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const PathInventory = "/inventory"

func addInventoryRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc, h *handlers.InventoryHandler) {
	inventory := rg.Group(PathInventory, protect, middleware.RequireRoles(entities.UserTypeFarmer))
	{
		inventory.GET("", h.List)
		inventory.PUT("/bulk", h.BulkUpdate)
		inventory.PUT("/:id", h.Update)
	}
}
