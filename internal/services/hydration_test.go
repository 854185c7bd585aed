package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyWaterTarget(t *testing.T) {
	assert.Equal(t, 2450.0, DailyWaterTarget(70))
	assert.Equal(t, 0.0, DailyWaterTarget(0))
}

func TestPerMissionTarget(t *testing.T) {
	assert.Equal(t, 700.0, PerMissionTarget(60, 3))
	assert.Equal(t, 700.0, PerMissionTarget(60, 0), "falls back to the default mission count")
	assert.Equal(t, 1050.0, PerMissionTarget(60, 2))
}

func TestExerciseExtra(t *testing.T) {
	tests := []struct {
		minutes int
		temp    float64
		want    float64
	}{
		{0, 25, 0},
		{30, 0, 0},
		{-5, 25, 0},
		{10, 20, 65},
		{10, 21, 100},
		{10, 26, 100},
		{10, 30, 135},
		{10, 32, 135},
		{10, 33, 175},
		{10, 40, 175},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExerciseExtra(tt.minutes, tt.temp), "minutes=%d temp=%v", tt.minutes, tt.temp)
	}
}
