package routes

import (
	"vermafarm/internal/adapter/http/handlers"
	"vermafarm/internal/adapter/http/middleware"
	"vermafarm/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const PathServiceRequests = "/service-requests"

// addServiceRequestRoutes mounts the lifecycle endpoints. my-requests, the
// single read and review are open to any authenticated caller; the use case
// rejects roles that cannot hold a request.
func addServiceRequestRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc, h *handlers.ServiceRequestHandler) {
	farmer := middleware.RequireRoles(entities.UserTypeFarmer)
	landowner := middleware.RequireRoles(entities.UserTypeLandowner)

	requests := rg.Group(PathServiceRequests, protect)
	{
		requests.POST("", farmer, h.Create)
		requests.GET("/available", landowner, h.ListAvailable)
		requests.GET("/my-requests", h.ListMine)
		requests.GET("/:id", h.Get)
		requests.PUT("/:id/accept", landowner, h.Accept)
		requests.PUT("/:id/start", landowner, h.Start)
		requests.PUT("/:id/complete", landowner, h.Complete)
		requests.PUT("/:id/cancel", farmer, h.Cancel)
		requests.PUT("/:id/review", h.Review)
	}
}
