package services

import (
	"math"
	"math/rand"
	"testing"

	"github.com/hidrata/quest-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressionState(level, xp, next int) *models.Profile {
	return &models.Profile{Level: level, CurrentXP: xp, XPToNext: next}
}

func TestApplyXP_LevelUps(t *testing.T) {
	tests := []struct {
		name                      string
		start                     *models.Profile
		delta                     int
		wantLevel, wantXP, wantTo int
		wantGained                int
	}{
		{"no level-up", progressionState(1, 0, 100), 40, 1, 40, 100, 0},
		{"exact threshold", progressionState(1, 0, 100), 100, 2, 0, 200, 1},
		{"one level-up", progressionState(1, 90, 100), 15, 2, 5, 200, 1},
		{"large grant stops below next threshold", progressionState(1, 0, 100), 250, 2, 150, 200, 1},
		{"multiple level-ups", progressionState(1, 0, 100), 300, 3, 0, 300, 2},
		{"from a later level", progressionState(4, 350, 400), 1000, 6, 450, 600, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.start
			gained, err := ApplyXP(p, tt.delta)
			require.NoError(t, err)

			assert.Equal(t, tt.wantGained, gained)
			assert.Equal(t, tt.wantLevel, p.Level)
			assert.Equal(t, tt.wantXP, p.CurrentXP)
			assert.Equal(t, tt.wantTo, p.XPToNext)
		})
	}
}

func TestApplyXP_NonPositiveDeltaIsNoop(t *testing.T) {
	for _, delta := range []int{0, -1, -500} {
		p := progressionState(3, 42, 300)
		gained, err := ApplyXP(p, delta)
		require.NoError(t, err)
		assert.Equal(t, 0, gained)
		assert.Equal(t, progressionState(3, 42, 300), p)
	}
}

func TestApplyXP_RepairsNonPositiveThreshold(t *testing.T) {
	p := progressionState(1, 0, 0)
	_, err := ApplyXP(p, 150)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 50, p.CurrentXP)
	assert.Equal(t, 200, p.XPToNext)
}

func TestApplyXP_InvariantHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		next := InitialXPToNext + XPStep*rng.Intn(20)
		p := progressionState(1+rng.Intn(20), rng.Intn(next), next)
		before := *p
		delta := rng.Intn(50000)

		gained, err := ApplyXP(p, delta)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, p.CurrentXP, 0)
		assert.Less(t, p.CurrentXP, p.XPToNext)
		assert.Equal(t, before.Level+gained, p.Level)
		assert.Equal(t, before.XPToNext+gained*XPStep, p.XPToNext)
		assert.GreaterOrEqual(t, p.XPToNext, before.XPToNext)
	}
}

func TestApplyXP_HugeDeltaTerminates(t *testing.T) {
	p := progressionState(1, 0, 100)
	_, err := ApplyXP(p, MaxXPGrant)
	require.NoError(t, err)

	assert.Less(t, p.CurrentXP, p.XPToNext)
	assert.Greater(t, p.Level, 1)
}

func TestApplyXP_RejectsOversizedGrant(t *testing.T) {
	for _, delta := range []int{MaxXPGrant + 1, math.MaxInt} {
		p := progressionState(1, 90, 100)

		gained, err := ApplyXP(p, delta)

		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, gained)
		assert.Equal(t, progressionState(1, 90, 100), p)
	}
}

func TestApplyXP_RejectsGrantThatWouldOverflow(t *testing.T) {
	p := progressionState(1, math.MaxInt-10, math.MaxInt)

	_, err := ApplyXP(p, 11)

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, math.MaxInt-10, p.CurrentXP)
}
