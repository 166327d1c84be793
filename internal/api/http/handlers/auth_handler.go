package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/makeup-booking/internal/api/dto"
	"github.com/spec-kit/makeup-booking/internal/auth"
	"github.com/spec-kit/makeup-booking/internal/service"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// AuthHandler manages login and principal introspection.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	user, token, exp, err := h.service.Login(c.Context(), req.Account, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.NewUserResponse(user),
	})
}

// Me GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(principal.User)})
}
