package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"github.com/hidrata/quest-backend/internal/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultAmbientTempC = 25.0

// ProfileService resolves and mutates the single profile owned by a user.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetOwned returns the profile owned by userID.
func (s *ProfileService) GetOwned(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Scopes(tenant.ForOwner(userID)).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Create gives user its profile. Progression always starts from the initial
// state regardless of the request.
func (s *ProfileService) Create(ctx context.Context, user *models.User, req *dto.CreateProfileRequest) (*models.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = user.Name
	}
	ambient := defaultAmbientTempC
	if req.AmbientTempC != nil {
		ambient = *req.AmbientTempC
	}

	profile := models.Profile{
		ID:           uuid.New(),
		UserID:       user.ID,
		Name:         name,
		ActivityTime: req.ActivityTime,
		WeightKg:     req.WeightKg,
		AmbientTempC: ambient,
	}
	NewProgression(&profile)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Profile{}).Scopes(tenant.ForOwner(user.ID)).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrProfileExists
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if errors.Is(err, ErrProfileExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

// Update applies an XP grant and the allow-listed field changes of req to
// the profile of userID in one transaction. The profile row is locked for
// the duration so concurrent grants do not overwrite each other. It returns
// the updated profile and the number of levels gained.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, int, error) {
	var (
		profile models.Profile
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

		if req.AddXP != nil {
			if gained, err = ApplyXP(&profile, *req.AddXP); err != nil {
				return err
			}
		}
		if err := mergeProfile(&profile, req); err != nil {
			return err
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		if errors.Is(err, ErrNoProfile) || errors.Is(err, ErrInvalidInput) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &profile, gained, nil
}

// Targets computes the hydration goals for the profile of userID.
func (s *ProfileService) Targets(ctx context.Context, userID uuid.UUID, missions int) (*dto.HydrationTargets, error) {
	profile, err := s.GetOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	return HydrationTargetsFor(profile, missions), nil
}

// mergeProfile copies the caller-editable fields of req onto p. Level and
// XP fields are not part of the request and cannot be set here.
func mergeProfile(p *models.Profile, req *dto.UpdateProfileRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		p.Name = name
	}
	if req.ActivityTime != nil {
		p.ActivityTime = *req.ActivityTime
	}
	if req.WeightKg != nil {
		p.WeightKg = *req.WeightKg
	}
	if req.AmbientTempC != nil {
		p.AmbientTempC = *req.AmbientTempC
	}
	return nil
}
