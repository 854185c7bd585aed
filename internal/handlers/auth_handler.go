package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login. It accepts the OAuth2 password form
// (username, password) or the equivalent JSON body.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Login() == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "username and password are required")
	}

	resp, err := h.authService.Login(c.UserContext(), req.Login(), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return fail(c, fiber.StatusUnauthorized, err.Error())
		}
		return serverError(c, "login", err)
	}

	return c.JSON(resp)
}
