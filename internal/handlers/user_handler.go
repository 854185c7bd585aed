package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"github.com/hidrata/quest-backend/internal/services"
	"github.com/hidrata/quest-backend/internal/tenant"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles POST /users.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.Register(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrInvalidInput) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return serverError(c, "register", err)
	}

	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// Update handles PATCH /users/:id. Callers may only update themselves.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	callerID, err := tenant.GetUserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, services.ErrUserNotFound.Error())
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.Update(c.UserContext(), callerID, targetID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrInvalidInput):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return serverError(c, "update_user", err, "user_id", callerID.String())
	}

	return c.JSON(toUserResponse(user))
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
