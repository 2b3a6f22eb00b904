package response

import (
	"time"

	"vermafarm/internal/domain/entities"
)

// UserResponse never carries the password hash.
type UserResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	UserType   string     `json:"userType"`
	Phone      string     `json:"phone"`
	Location   string     `json:"location"`
	Stats      any        `json:"stats"`
	IsVerified bool       `json:"isVerified"`
	IsActive   bool       `json:"isActive"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func FromUser(u entities.User) UserResponse {
	res := UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		UserType:   string(u.UserType),
		Phone:      u.Phone,
		Location:   u.Location,
		Stats:      u.Stats(),
		IsVerified: u.IsVerified,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
	if !u.LastLogin.IsZero() {
		last := u.LastLogin
		res.LastLogin = &last
	}
	return res
}
