package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/config"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// UserService owns the identity store.
type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

// Register creates a new identity. The email must not be in use.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if err := validateIdentity(name, email, req.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := emailTaken(tx, email, uuid.Nil); err != nil {
			return err
		} else if taken {
			return ErrEmailTaken
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, translateUserError(err, "failed to create user")
	}
	return &user, nil
}

// Update applies the allow-listed identity fields of req to the user
// targetID. Only the user itself may be updated; any other target is
// reported as ErrUserNotFound.
func (s *UserService) Update(ctx context.Context, callerID, targetID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	if callerID != targetID {
		return nil, ErrUserNotFound
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := s.mergeUser(&user, req); err != nil {
			return err
		}

		if taken, err := emailTaken(tx, user.Email, user.ID); err != nil {
			return err
		} else if taken {
			return ErrEmailTaken
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, translateUserError(err, "failed to update user")
	}
	return &user, nil
}

// mergeUser copies the updatable fields of req onto user.
func (s *UserService) mergeUser(user *models.User, req *dto.UpdateUserRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		user.Name = name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if !strings.Contains(email, "@") {
			return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
		}
		user.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
		}
		hash, err := hashPassword(*req.Password, s.cfg.BcryptCost)
		if err != nil {
			return err
		}
		user.Password = hash
	}
	return nil
}

func validateIdentity(name, email, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

func emailTaken(tx *gorm.DB, email string, except uuid.UUID) (bool, error) {
	var count int64
	q := tx.Model(&models.User{}).Where("email = ?", email)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func translateUserError(err error, msg string) error {
	switch {
	case errors.Is(err, ErrEmailTaken), errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrEmailTaken
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidInput):
		return err
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
