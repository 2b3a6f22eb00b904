package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase"
	"vermafarm/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	userKey   = "user"
	callerKey = "caller"
)

var (
	errNotAuthenticated = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Not authorized to access this route", http.StatusUnauthorized)
)

// Auth resolves the bearer token to an active account and stores it on the
// context. Requests without a valid token are rejected with 401.
func Auth(accounts usecase.IAccountUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
			return
		}

		user, err := accounts.Authenticate(c.Request.Context(), token)
		if err != nil {
			appErr := mapAuthError(err)
			if appErr.HTTPStatus == http.StatusInternalServerError {
				logrus.WithError(err).Error("[auth][middleware] failed to authenticate request")
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// RequireRoles rejects callers whose user type is not one of roles.
func RequireRoles(roles ...entities.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(errNotAuthenticated.HTTPStatus, errNotAuthenticated.ToHTTPError())
			return
		}
		if !slices.Contains(roles, caller.UserType) {
			appErr := pkg.NewDomainErrorSimple(
				"FORBIDDEN",
				"User role "+string(caller.UserType)+" is not authorized to access this route",
				http.StatusForbidden,
			)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Next()
	}
}

// SetUser stores the authenticated account on the request context.
func SetUser(c *gin.Context, u entities.User) {
	c.Set(userKey, u)
	c.Set(callerKey, entities.Caller{UserID: u.ID, UserType: u.UserType})
}

func CallerFrom(c *gin.Context) (entities.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return entities.Caller{}, false
	}
	caller, ok := v.(entities.Caller)
	return caller, ok && caller.UserID != ""
}

func UserFrom(c *gin.Context) (entities.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return entities.User{}, false
	}
	u, ok := v.(entities.User)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, entities.ErrAuthentication):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", err.Error(), http.StatusUnauthorized)
	case errors.Is(err, entities.ErrAuthorization):
		return pkg.NewDomainErrorSimple("FORBIDDEN", err.Error(), http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
