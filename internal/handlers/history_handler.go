package handlers

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"github.com/hidrata/quest-backend/internal/services"
	"github.com/hidrata/quest-backend/internal/tenant"
)

// HistoryHandler serves the water log of the caller's profile. Every route
// resolves the caller's profile first; entries are never addressed without it.
type HistoryHandler struct {
	profileService *services.ProfileService
	historyService *services.HistoryService
}

func NewHistoryHandler(profileService *services.ProfileService, historyService *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		profileService: profileService,
		historyService: historyService,
	}
}

func (h *HistoryHandler) List(c *fiber.Ctx) error {
	period, err := services.ParsePeriod(c.Query("periodo"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := h.ownedProfile(c, fiber.StatusNotFound)
	if profile == nil {
		return err
	}

	entries, err := h.historyService.List(c.UserContext(), profile.ID, period)
	if err != nil {
		return serverError(c, "list_history", err, "profile_id", profile.ID.String())
	}

	resp := make([]dto.HistoryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, toHistoryResponse(&entries[i]))
	}
	return c.JSON(resp)
}

func (h *HistoryHandler) Summary(c *fiber.Ctx) error {
	period, err := services.ParsePeriod(c.Query("periodo"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := h.ownedProfile(c, fiber.StatusNotFound)
	if profile == nil {
		return err
	}

	summary, err := h.historyService.Summary(c.UserContext(), profile.ID, period)
	if err != nil {
		return serverError(c, "summarize_history", err, "profile_id", profile.ID.String())
	}
	return c.JSON(summary)
}

func (h *HistoryHandler) Create(c *fiber.Ctx) error {
	// A caller without a profile has nothing to log against: bad request.
	profile, err := h.ownedProfile(c, fiber.StatusBadRequest)
	if profile == nil {
		return err
	}

	var req dto.CreateHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Amount == nil || math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) {
		return fail(c, fiber.StatusBadRequest, "amount is required")
	}

	entry, err := h.historyService.Append(c.UserContext(), profile.ID, *req.Amount)
	if err != nil {
		return serverError(c, "create_history", err, "profile_id", profile.ID.String())
	}
	return c.Status(fiber.StatusCreated).JSON(toHistoryResponse(entry))
}

func (h *HistoryHandler) Delete(c *fiber.Ctx) error {
	// An id that cannot parse cannot name an owned entry either.
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, services.ErrHistoryNotFound.Error())
	}

	profile, err := h.ownedProfile(c, fiber.StatusNotFound)
	if profile == nil {
		return err
	}

	entry, err := h.historyService.Delete(c.UserContext(), profile.ID, entryID)
	if err != nil {
		if errors.Is(err, services.ErrHistoryNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return serverError(c, "delete_history", err, "profile_id", profile.ID.String())
	}
	return c.JSON(toHistoryResponse(entry))
}

// ownedProfile resolves the caller's profile. When it returns a nil profile
// the response has already been written and err is what the handler returns.
func (h *HistoryHandler) ownedProfile(c *fiber.Ctx, missingStatus int) (*models.Profile, error) {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return nil, fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	profile, err := h.profileService.GetOwned(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoProfile) {
			return nil, fail(c, missingStatus, err.Error())
		}
		return nil, serverError(c, "resolve_profile", err, "user_id", userID.String())
	}
	return profile, nil
}

func toHistoryResponse(e *models.HistoryEntry) dto.HistoryResponse {
	return dto.HistoryResponse{
		ID:     e.ID,
		Amount: e.Amount,
		Time:   e.Time,
	}
}
