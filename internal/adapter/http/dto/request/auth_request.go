package request

import (
	"strings"

	"vermafarm/internal/domain/entities"
	"vermafarm/internal/usecase"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	UserType string `json:"userType" binding:"required"`
	Location string `json:"location" binding:"required"`
}

func (r RegisterRequest) ToInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Name:     strings.TrimSpace(r.Name),
		Email:    r.Email,
		Password: r.Password,
		Phone:    strings.TrimSpace(r.Phone),
		UserType: entities.UserType(strings.TrimSpace(r.UserType)),
		Location: strings.TrimSpace(r.Location),
	}
}

// LoginRequest has no binding tags: missing fields get the use case's own
// "Please provide an email and password" message.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateDetailsRequest struct {
	Name                 *string  `json:"name"`
	Phone                *string  `json:"phone"`
	Location             *string  `json:"location"`
	ServiceChargePercent *float64 `json:"serviceChargePercent"`
}

func (r UpdateDetailsRequest) ToInput() usecase.UpdateDetailsInput {
	return usecase.UpdateDetailsInput{
		Name:                 trimPtr(r.Name),
		Phone:                trimPtr(r.Phone),
		Location:             trimPtr(r.Location),
		ServiceChargePercent: r.ServiceChargePercent,
	}
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
