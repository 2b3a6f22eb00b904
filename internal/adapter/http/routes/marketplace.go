package routes

import (
	"vermafarm/internal/adapter/http/handlers"
	"vermafarm/internal/adapter/http/middleware"
	"vermafarm/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const PathMarketplace = "/marketplace"

func addMarketplaceRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc, h *handlers.MarketplaceHandler) {
	seller := middleware.RequireRoles(entities.UserTypeFarmer, entities.UserTypeLandowner)
	buyer := middleware.RequireRoles(entities.UserTypeBuyer)

	market := rg.Group(PathMarketplace)
	{
		// Public catalogue.
		market.GET("", h.List)
		market.GET("/stats", h.Stats)
		market.GET("/:id", h.Get)

		market.POST("", protect, seller, h.Create)
		market.GET("/my-listings", protect, seller, h.ListMine)
		market.GET("/my-purchases", protect, buyer, h.MyPurchases)
		market.PUT("/:id", protect, seller, h.Update)
		market.DELETE("/:id", protect, seller, h.Delete)
		market.PUT("/:id/activate", protect, seller, h.Activate)
		market.PUT("/:id/deactivate", protect, seller, h.Deactivate)
		market.POST("/:id/contact", protect, h.Contact)
		market.POST("/:id/purchase", protect, buyer, h.Purchase)
	}
}
