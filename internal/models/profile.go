package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the physical attributes and progression state of one user.
// UserID is unique: a user owns at most one profile.
type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	ActivityTime int       `gorm:"not null" json:"activity_time"`
	WeightKg     float64   `gorm:"not null" json:"weight_kg"`
	AmbientTempC float64   `gorm:"not null" json:"ambient_temp_c"`
	Level        int       `gorm:"not null;default:1" json:"level"`
	CurrentXP    int       `gorm:"column:current_xp;not null" json:"current_xp"`
	XPToNext     int       `gorm:"column:xp_to_next;not null;default:100" json:"xp_to_next"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
}
