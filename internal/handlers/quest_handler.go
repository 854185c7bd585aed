package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/services"
	"github.com/hidrata/quest-backend/internal/tenant"
)

type QuestHandler struct {
	questService *services.QuestService
}

func NewQuestHandler(questService *services.QuestService) *QuestHandler {
	return &QuestHandler{questService: questService}
}

// List handles GET /perfil/quests.
func (h *QuestHandler) List(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	quests, err := h.questService.List(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoProfile) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		return serverError(c, "list_quests", err, "user_id", userID.String())
	}
	return c.JSON(quests)
}

// Claim handles POST /perfil/quests/:id/resgatar and pays the quest's XP.
func (h *QuestHandler) Claim(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	profile, quest, gained, err := h.questService.Claim(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoProfile), errors.Is(err, services.ErrQuestNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrQuestIncomplete), errors.Is(err, services.ErrQuestClaimed),
			errors.Is(err, services.ErrInvalidInput):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return serverError(c, "claim_quest", err, "user_id", userID.String(), "quest_id", c.Params("id"))
	}

	return c.JSON(dto.QuestClaimResponse{
		Quest:   *quest,
		Profile: toProfileResponse(profile, gained),
	})
}
