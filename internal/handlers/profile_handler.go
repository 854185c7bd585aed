package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"github.com/hidrata/quest-backend/internal/services"
	"github.com/hidrata/quest-backend/internal/tenant"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	user, err := tenant.GetIdentity(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	profile, err := h.profileService.GetOwned(c.UserContext(), user.ID)
	if err != nil {
		return h.profileError(c, "get_profile", user, err)
	}
	return c.JSON(toProfileResponse(profile, 0))
}

func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	user, err := tenant.GetIdentity(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	profile, err := h.profileService.Create(c.UserContext(), user, &req)
	if err != nil {
		return h.profileError(c, "create_profile", user, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProfileResponse(profile, 0))
}

// Update handles PATCH /perfil. add_xp is applied through the progression
// engine, other fields are copied as given.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	user, err := tenant.GetIdentity(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	profile, gained, err := h.profileService.Update(c.UserContext(), user.ID, &req)
	if err != nil {
		return h.profileError(c, "update_profile", user, err)
	}
	return c.JSON(toProfileResponse(profile, gained))
}

// Targets handles GET /perfil/metas?missoes=N.
func (h *ProfileHandler) Targets(c *fiber.Ctx) error {
	user, err := tenant.GetIdentity(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	missions := services.DefaultMissions
	if raw := c.Query("missoes"); raw != "" {
		missions, err = strconv.Atoi(raw)
		if err != nil || missions < 1 || missions > services.MaxMissions {
			return fail(c, fiber.StatusBadRequest, "missoes must be between 1 and "+strconv.Itoa(services.MaxMissions))
		}
	}

	targets, err := h.profileService.Targets(c.UserContext(), user.ID, missions)
	if err != nil {
		return h.profileError(c, "profile_targets", user, err)
	}
	return c.JSON(targets)
}

func (h *ProfileHandler) profileError(c *fiber.Ctx, action string, user *models.User, err error) error {
	switch {
	case errors.Is(err, services.ErrNoProfile):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrProfileExists), errors.Is(err, services.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	return serverError(c, action, err, "user_id", user.ID.String())
}

func toProfileResponse(p *models.Profile, gained int) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:           p.ID,
		Name:         p.Name,
		ActivityTime: p.ActivityTime,
		WeightKg:     p.WeightKg,
		AmbientTempC: p.AmbientTempC,
		Level:        p.Level,
		CurrentXP:    p.CurrentXP,
		XPToNext:     p.XPToNext,
		LevelsGained: gained,
	}
}
