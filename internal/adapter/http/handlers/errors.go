package handlers

import (
	"errors"
	"net/http"

	"vermafarm/internal/adapter/http/middleware"
	"vermafarm/internal/domain/entities"
	"vermafarm/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	errMissingCaller = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Not authorized to access this route", http.StatusUnauthorized)
)

// kindError maps the domain error kinds to their transport form. ok is false
// for errors outside the domain, which callers turn into a 500.
func kindError(err error) (*pkg.AppError, bool) {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", err.Error(), http.StatusBadRequest), true
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", err.Error(), http.StatusNotFound), true
	case errors.Is(err, entities.ErrAuthorization):
		return pkg.NewDomainErrorSimple("FORBIDDEN", err.Error(), http.StatusForbidden), true
	case errors.Is(err, entities.ErrInvalidState):
		return pkg.NewDomainErrorSimple("INVALID_STATE", err.Error(), http.StatusBadRequest), true
	case errors.Is(err, entities.ErrConflict):
		return pkg.NewDomainErrorSimple("CONFLICT", err.Error(), http.StatusBadRequest), true
	case errors.Is(err, entities.ErrAuthentication):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", err.Error(), http.StatusUnauthorized), true
	}
	return nil, false
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}

func invalidPayload(message string) *pkg.AppError {
	return pkg.NewDomainErrorSimple("INVALID_REQUEST", message, http.StatusBadRequest)
}

// abort writes appErr and logs it when the cause is not a domain error.
func abort(c *gin.Context, component string, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logrus.WithError(appErr.Err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("[" + component + "][handler] request failed")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func requireCaller(c *gin.Context) (entities.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(errMissingCaller.HTTPStatus, errMissingCaller.ToHTTPError())
		return entities.Caller{}, false
	}
	return caller, true
}
