package dto

import (
	"time"

	"github.com/spec-kit/makeup-booking/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Account  string `json:"account" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the account snapshot.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the caller-visible account shape.
type UserResponse struct {
	ID             string      `json:"id"`
	Account        string      `json:"account"`
	Name           string      `json:"name"`
	Role           domain.Role `json:"role"`
	ClassName      *string     `json:"class_name"`
	IsSuspended    bool        `json:"is_suspended"`
	SuspendedUntil *string     `json:"suspended_until"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID,
		Account:     user.Account,
		Name:        user.Name,
		Role:        user.Role,
		ClassName:   user.ClassName,
		IsSuspended: user.IsSuspended,
	}
	if user.SuspendedUntil != nil {
		until := domain.FormatDate(*user.SuspendedUntil)
		resp.SuspendedUntil = &until
	}
	return resp
}
