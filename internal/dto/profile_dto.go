package dto

import "github.com/google/uuid"

type CreateProfileRequest struct {
	Name         string   `json:"name"`
	ActivityTime int      `json:"activity_time"`
	WeightKg     float64  `json:"weight_kg"`
	AmbientTempC *float64 `json:"ambient_temp_c"`
}

// UpdateProfileRequest lists every field a caller may change on a profile.
// Progression state is reachable only through AddXP.
type UpdateProfileRequest struct {
	Name         *string  `json:"name"`
	ActivityTime *int     `json:"activity_time"`
	WeightKg     *float64 `json:"weight_kg"`
	AmbientTempC *float64 `json:"ambient_temp_c"`
	AddXP        *int     `json:"add_xp"`
}

type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ActivityTime int       `json:"activity_time"`
	WeightKg     float64   `json:"weight_kg"`
	AmbientTempC float64   `json:"ambient_temp_c"`
	Level        int       `json:"level"`
	CurrentXP    int       `json:"current_xp"`
	XPToNext     int       `json:"xp_to_next"`
	LevelsGained int       `json:"levels_gained,omitempty"`
}

type HydrationTargets struct {
	DailyTargetML   float64 `json:"daily_target_ml"`
	Missions        int     `json:"missions"`
	PerMissionML    float64 `json:"per_mission_ml"`
	ExerciseExtraML float64 `json:"exercise_extra_ml"`
	TotalTargetML   float64 `json:"total_target_ml"`
}
