package handlers

import (
	"errors"
	"net/http"

	"vermafarm/internal/adapter/http/dto/request"
	"vermafarm/internal/adapter/http/dto/response"
	"vermafarm/internal/adapter/http/middleware"
	"vermafarm/internal/usecase"
	"vermafarm/pkg"

	"github.com/gin-gonic/gin"
)

const authComponent = "auth"

// AuthHandler handles registration, login and the caller's own profile.
type AuthHandler struct {
	usecase usecase.IAccountUseCase
}

func NewAuthHandler(uc usecase.IAccountUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var payload request.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, authComponent, invalidPayload("Please provide name, email, password, phone, userType and location"))
		return
	}

	user, token, err := h.usecase.Register(c.Request.Context(), payload.ToInput())
	if err != nil {
		abort(c, authComponent, mapAuthError(err))
		return
	}
	c.JSON(http.StatusCreated, response.WithToken("User registered successfully", token, user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, authComponent, mapAuthError(usecase.ErrMissingCredentials))
		return
	}

	user, token, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		abort(c, authComponent, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.WithToken("Login successful", token, user))
}

// Me answers from the account the auth middleware already loaded.
func (h *AuthHandler) Me(c *gin.Context) {
	if u, ok := middleware.UserFrom(c); ok && u.ID != "" {
		c.JSON(http.StatusOK, response.OK("", response.FromUser(u)))
		return
	}
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	user, err := h.usecase.Me(c.Request.Context(), caller)
	if err != nil {
		abort(c, authComponent, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromUser(user)))
}

func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, authComponent, invalidPayload("Invalid profile payload"))
		return
	}

	user, err := h.usecase.UpdateDetails(c.Request.Context(), caller, payload.ToInput())
	if err != nil {
		abort(c, authComponent, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Profile updated successfully", response.FromUser(user)))
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, authComponent, invalidPayload("Please provide the current and the new password"))
		return
	}

	user, token, err := h.usecase.UpdatePassword(c.Request.Context(), caller, payload.CurrentPassword, payload.NewPassword)
	if err != nil {
		abort(c, authComponent, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.WithToken("Password updated successfully", token, user))
}

// Logout is stateless: tokens are not tracked server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, response.Empty("Logged out successfully"))
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrEmailTaken):
		return pkg.NewDomainErrorSimple("EMAIL_TAKEN", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrIncorrectPassword):
		return pkg.NewDomainErrorSimple("INCORRECT_PASSWORD", err.Error(), http.StatusUnauthorized)
	}
	if appErr, ok := kindError(err); ok {
		return appErr
	}
	return internalError(err)
}
