package routes

import (
	"vermafarm/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathAuth = "/auth"

func addAuthRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc, h *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", protect, h.Me)
		auth.PUT("/updatedetails", protect, h.UpdateDetails)
		auth.PUT("/updatepassword", protect, h.UpdatePassword)
		auth.GET("/logout", protect, h.Logout)
	}
}
