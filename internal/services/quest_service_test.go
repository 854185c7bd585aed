package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
	"github.com/hidrata/quest-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedHistory(t *testing.T, db *gorm.DB, profileID uuid.UUID, amounts map[time.Time]float64) {
	t.Helper()
	svc := NewHistoryService(db)
	for at, amount := range amounts {
		at := at
		svc.now = func() time.Time { return at }
		_, err := svc.Append(context.Background(), profileID, amount)
		require.NoError(t, err)
	}
}

// Wednesday. The week started on Sunday the 14th.
var questNow = time.Date(2025, 9, 17, 18, 0, 0, 0, time.UTC)

func TestQuestService_ProgressFromHistory(t *testing.T) {
	db := testutil.NewDB(t)
	user := registerUser(t, db, "Ana", "ana@example.com")
	profile := createProfile(t, db, user)

	// 70 kg, 30 min at 25 °C: daily 2450 mL, 816.67 per mission, 300 extra.
	seedHistory(t, db, profile.ID, map[time.Time]float64{
		time.Date(2025, 9, 17, 9, 0, 0, 0, time.UTC):  1000,
		time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC): 1500,
		time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC): 1000,
		time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC):  500,
		time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC): 900,
	})

	svc := NewQuestService(db)
	svc.now = func() time.Time { return questNow }

	quests, err := svc.List(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, quests, 6)

	for _, id := range []string{"d1", "d2", "d3"} {
		q := questByID(t, quests, id)
		assert.True(t, q.Completed, id)
		assert.InDelta(t, 2450.0/3, q.ProgressML, 1e-9, id)
		assert.Equal(t, time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC), q.PeriodStart.UTC(), id)
		assert.False(t, q.Claimed, id)
	}

	// 50 mL over the daily target goes to the exercise quest.
	extra := questByID(t, quests, "d_extra")
	assert.Equal(t, 300.0, extra.TargetML)
	assert.InDelta(t, 50.0, extra.ProgressML, 1e-9)
	assert.False(t, extra.Completed)

	week := questByID(t, quests, "w1")
	assert.InDelta(t, 2450.0*7, week.TargetML, 1e-9)
	assert.Equal(t, 3500.0, week.ProgressML)
	assert.Equal(t, time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC), week.PeriodStart.UTC())
	assert.False(t, week.Completed)

	month := questByID(t, quests, "m1")
	assert.Equal(t, 4000.0, month.ProgressML)
	assert.False(t, month.Completed)
}

func TestQuestService_ClaimPaysOncePerPeriod(t *testing.T) {
	db := testutil.NewDB(t)
	user := registerUser(t, db, "Ana", "ana@example.com")
	profile := createProfile(t, db, user)
	seedHistory(t, db, profile.ID, map[time.Time]float64{
		time.Date(2025, 9, 17, 9, 0, 0, 0, time.UTC): 1000,
	})

	svc := NewQuestService(db)
	svc.now = func() time.Time { return questNow }
	ctx := context.Background()

	updated, quest, gained, err := svc.Claim(ctx, user.ID, "d1")
	require.NoError(t, err)
	assert.True(t, quest.Claimed)
	assert.Equal(t, 10, quest.Reward)
	assert.Equal(t, 0, gained)
	assert.Equal(t, 10, updated.CurrentXP)

	_, _, _, err = svc.Claim(ctx, user.ID, "d1")
	assert.ErrorIs(t, err, ErrQuestClaimed)

	_, _, _, err = svc.Claim(ctx, user.ID, "d2")
	assert.ErrorIs(t, err, ErrQuestIncomplete)

	_, _, _, err = svc.Claim(ctx, user.ID, "x9")
	assert.ErrorIs(t, err, ErrQuestNotFound)

	quests, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, questByID(t, quests, "d1").Claimed)
	assert.False(t, questByID(t, quests, "d2").Claimed)

	// A new day opens a new period for the daily quests.
	tomorrow := questNow.Add(24 * time.Hour)
	seedHistory(t, db, profile.ID, map[time.Time]float64{tomorrow.Add(-time.Hour): 900})
	svc.now = func() time.Time { return tomorrow }

	updated, _, _, err = svc.Claim(ctx, user.ID, "d1")
	require.NoError(t, err)
	assert.Equal(t, 20, updated.CurrentXP)

	var claims int64
	require.NoError(t, db.Model(&models.QuestClaim{}).Where("profile_id = ?", profile.ID).Count(&claims).Error)
	assert.Equal(t, int64(2), claims)
}

func TestQuestService_RewardLevelsUp(t *testing.T) {
	db := testutil.NewDB(t)
	user := registerUser(t, db, "Ana", "ana@example.com")
	profile := createProfile(t, db, user)

	_, _, err := NewProfileService(db).Update(context.Background(), user.ID, &dto.UpdateProfileRequest{AddXP: intPtr(95)})
	require.NoError(t, err)
	seedHistory(t, db, profile.ID, map[time.Time]float64{
		time.Date(2025, 9, 17, 9, 0, 0, 0, time.UTC): 900,
	})

	svc := NewQuestService(db)
	svc.now = func() time.Time { return questNow }

	updated, _, gained, err := svc.Claim(context.Background(), user.ID, "d1")
	require.NoError(t, err)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, 5, updated.CurrentXP)
	assert.Equal(t, 200, updated.XPToNext)
}

func TestQuestService_OtherProfilesHistoryDoesNotCount(t *testing.T) {
	db := testutil.NewDB(t)
	ana := createProfile(t, db, registerUser(t, db, "Ana", "ana@example.com"))
	bia := registerUser(t, db, "Bia", "bia@example.com")
	createProfile(t, db, bia)
	seedHistory(t, db, ana.ID, map[time.Time]float64{
		time.Date(2025, 9, 17, 9, 0, 0, 0, time.UTC): 3000,
	})

	svc := NewQuestService(db)
	svc.now = func() time.Time { return questNow }

	quests, err := svc.List(context.Background(), bia.ID)
	require.NoError(t, err)
	for _, q := range quests {
		assert.Zero(t, q.ProgressML, q.ID)
	}

	_, _, _, err = svc.Claim(context.Background(), bia.ID, "d1")
	assert.ErrorIs(t, err, ErrQuestIncomplete)
}

func TestQuestService_NoProfile(t *testing.T) {
	db := testutil.NewDB(t)
	user := registerUser(t, db, "Ana", "ana@example.com")
	svc := NewQuestService(db)

	_, err := svc.List(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrNoProfile)

	_, _, _, err = svc.Claim(context.Background(), user.ID, "d1")
	assert.ErrorIs(t, err, ErrNoProfile)
}
