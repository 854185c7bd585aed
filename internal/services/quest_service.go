package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"github.com/hidrata/quest-backend/internal/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestService measures the hydration quests of a profile against its
// history and pays out their XP rewards.
type QuestService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewQuestService(db *gorm.DB) *QuestService {
	return &QuestService{db: db, now: time.Now}
}

// List returns the quests of the profile owned by userID with their progress
// in the current periods.
func (s *QuestService) List(ctx context.Context, userID uuid.UUID) ([]dto.QuestProgress, error) {
	db := s.db.WithContext(ctx)

	var profile models.Profile
	if err := db.Scopes(tenant.ForOwner(userID)).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProfile
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	quests, err := s.progress(db, &profile, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate quests: %w", err)
	}
	return quests, nil
}

// Claim pays the reward of a completed quest into the profile of userID.
// Each quest pays once per period. It returns the updated profile, the
// quest and the number of levels gained.
func (s *QuestService) Claim(ctx context.Context, userID uuid.UUID, questID string) (*models.Profile, *dto.QuestProgress, int, error) {
	var (
		profile models.Profile
		quest   dto.QuestProgress
		gained  int
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(tenant.ForOwner(userID)).
			First(&profile).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoProfile
			}
			return err
		}

		quests, err := s.progress(tx, &profile, s.now())
		if err != nil {
			return err
		}
		found := false
		for _, q := range quests {
			if q.ID == questID {
				quest, found = q, true
				break
			}
		}
		switch {
		case !found:
			return ErrQuestNotFound
		case quest.Claimed:
			return ErrQuestClaimed
		case !quest.Completed:
			return ErrQuestIncomplete
		}

		claim := models.QuestClaim{
			ID:          uuid.New(),
			ProfileID:   profile.ID,
			QuestID:     quest.ID,
			PeriodStart: quest.PeriodStart,
			Reward:      quest.Reward,
		}
		if err := tx.Create(&claim).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrQuestClaimed
			}
			return err
		}

		if gained, err = ApplyXP(&profile, quest.Reward); err != nil {
			return err
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoProfile), errors.Is(err, ErrQuestNotFound),
			errors.Is(err, ErrQuestClaimed), errors.Is(err, ErrQuestIncomplete),
			errors.Is(err, ErrInvalidInput):
			return nil, nil, 0, err
		}
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	quest.Claimed = true
	return &profile, &quest, gained, nil
}

// progress evaluates the quests of profile at now. All windows come from
// the same instant.
func (s *QuestService) progress(db *gorm.DB, profile *models.Profile, now time.Time) ([]dto.QuestProgress, error) {
	windows := make(map[Period]questWindow, len(questPeriods))
	totals := make(map[Period]float64, len(questPeriods))
	starts := make([]time.Time, 0, len(questPeriods))

	for _, period := range questPeriods {
		from, to, _ := period.Window(now)
		_, total, err := sumEntries(db, profile.ID, from, to, true)
		if err != nil {
			return nil, err
		}
		windows[period] = questWindow{from: from, to: to}
		totals[period] = total
		starts = append(starts, from)
	}

	quests := evaluateQuests(HydrationTargetsFor(profile, DefaultMissions), totals, windows)

	var claims []models.QuestClaim
	err := db.Scopes(tenant.ForProfile(profile.ID)).
		Where("period_start IN ?", starts).
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	for i := range quests {
		for _, c := range claims {
			if c.QuestID == quests[i].ID && c.PeriodStart.Equal(quests[i].PeriodStart) {
				quests[i].Claimed = true
				break
			}
		}
	}
	return quests, nil
}
