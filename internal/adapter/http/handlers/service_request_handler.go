package handlers

import (
	"context"
	"net/http"

	"vermafarm/internal/adapter/http/dto/request"
	"vermafarm/internal/adapter/http/dto/response"
	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase"
	"vermafarm/pkg"

	"github.com/gin-gonic/gin"
)

const serviceRequestComponent = "service-request"

// ServiceRequestHandler handles the service-request lifecycle endpoints.
type ServiceRequestHandler struct {
	usecase usecase.IServiceRequestUseCase
}

func NewServiceRequestHandler(uc usecase.IServiceRequestUseCase) *ServiceRequestHandler {
	return &ServiceRequestHandler{usecase: uc}
}

func (h *ServiceRequestHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, serviceRequestComponent, invalidPayload("Invalid service request payload"))
		return
	}

	sr, err := h.usecase.Create(c.Request.Context(), caller, payload.ToParams())
	if err != nil {
		abort(c, serviceRequestComponent, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusCreated, response.OK("Service request created successfully", response.FromServiceRequest(sr)))
}

func (h *ServiceRequestHandler) ListAvailable(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	list, err := h.usecase.ListAvailable(c.Request.Context(), caller)
	if err != nil {
		abort(c, serviceRequestComponent, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.List(response.FromServiceRequests(list)))
}

func (h *ServiceRequestHandler) ListMine(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	list, err := h.usecase.ListMine(c.Request.Context(), caller)
	if err != nil {
		abort(c, serviceRequestComponent, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.List(response.FromServiceRequests(list)))
}

func (h *ServiceRequestHandler) Get(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	sr, err := h.usecase.GetByID(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		abort(c, serviceRequestComponent, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("", response.FromServiceRequest(sr)))
}

func (h *ServiceRequestHandler) Accept(c *gin.Context) {
	h.transition(c, h.usecase.Accept, "Service request accepted successfully")
}

func (h *ServiceRequestHandler) Start(c *gin.Context) {
	h.transition(c, h.usecase.Start, "Project started successfully")
}

func (h *ServiceRequestHandler) Cancel(c *gin.Context) {
	h.transition(c, h.usecase.Cancel, "Service request cancelled successfully")
}

// Complete accepts an empty body; the estimated revenue is then used.
func (h *ServiceRequestHandler) Complete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.CompleteServiceRequestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			abort(c, serviceRequestComponent, invalidPayload("Actual revenue must be a non-negative number"))
			return
		}
	}

	sr, settlement, err := h.usecase.Complete(c.Request.Context(), caller, c.Param("id"), payload.Revenue())
	if err != nil {
		abort(c, serviceRequestComponent, mapServiceRequestError(err))
		return
	}
	env := response.OK("Project completed successfully", response.FromServiceRequest(sr))
	env.Earnings = response.FromSettlement(settlement)
	c.JSON(http.StatusOK, env)
}

func (h *ServiceRequestHandler) Review(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var payload request.ReviewServiceRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abort(c, serviceRequestComponent, invalidPayload("Quality rating must be between 1 and 5"))
		return
	}

	sr, err := h.usecase.Review(c.Request.Context(), caller, c.Param("id"), payload.QualityRating, payload.Review)
	if err != nil {
		abort(c, serviceRequestComponent, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK("Review saved successfully", response.FromServiceRequest(sr)))
}

type transitionFunc func(ctx context.Context, caller entities.Caller, id string) (entities.ServiceRequest, error)

func (h *ServiceRequestHandler) transition(c *gin.Context, fn transitionFunc, message string) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	sr, err := fn(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		abort(c, serviceRequestComponent, mapServiceRequestError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK(message, response.FromServiceRequest(sr)))
}

func mapServiceRequestError(err error) *pkg.AppError {
	if appErr, ok := kindError(err); ok {
		return appErr
	}
	return internalError(err)
}
