package services

import (
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/models"
)

const (
	// MlPerKg is the daily water need per kilogram of body weight.
	MlPerKg         = 35.0
	DefaultMissions = 3
	MaxMissions     = 12
)

// DailyWaterTarget returns the recommended daily intake in mL.
func DailyWaterTarget(weightKg float64) float64 {
	return weightKg * MlPerKg
}

// PerMissionTarget splits the daily target over missions.
func PerMissionTarget(weightKg float64, missions int) float64 {
	if missions <= 0 {
		missions = DefaultMissions
	}
	return DailyWaterTarget(weightKg) / float64(missions)
}

// ExerciseExtra returns the additional intake for activityTime minutes of
// exercise at ambientTempC. It is zero when either input is not positive.
func ExerciseExtra(activityTime int, ambientTempC float64) float64 {
	if activityTime <= 0 || ambientTempC <= 0 {
		return 0
	}

	var mlPerMin float64
	switch {
	case ambientTempC <= 20:
		mlPerMin = 6.5
	case ambientTempC <= 26:
		mlPerMin = 10
	case ambientTempC <= 32:
		mlPerMin = 13.5
	default:
		mlPerMin = 17.5
	}
	return float64(activityTime) * mlPerMin
}

func HydrationTargetsFor(p *models.Profile, missions int) *dto.HydrationTargets {
	if missions <= 0 || missions > MaxMissions {
		missions = DefaultMissions
	}
	daily := DailyWaterTarget(p.WeightKg)
	extra := ExerciseExtra(p.ActivityTime, p.AmbientTempC)
	return &dto.HydrationTargets{
		DailyTargetML:   daily,
		Missions:        missions,
		PerMissionML:    PerMissionTarget(p.WeightKg, missions),
		ExerciseExtraML: extra,
		TotalTargetML:   daily + extra,
	}
}
