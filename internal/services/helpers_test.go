package services

import (
	"context"
	"testing"

	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"github.com/hidrata/quest-backend/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func registerUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	svc := NewUserService(db, testutil.Config())
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func createProfile(t *testing.T, db *gorm.DB, user *models.User) *models.Profile {
	t.Helper()
	profile, err := NewProfileService(db).Create(context.Background(), user, &dto.CreateProfileRequest{
		WeightKg:     70,
		ActivityTime: 30,
	})
	require.NoError(t, err)
	return profile
}
