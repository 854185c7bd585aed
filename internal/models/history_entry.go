package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one logged water intake. Entries are never updated.
type HistoryEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index:idx_history_profile_time,priority:1" json:"-"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Time      time.Time `gorm:"column:recorded_at;not null;index:idx_history_profile_time,priority:2" json:"time"`
	Profile   Profile   `gorm:"foreignKey:ProfileID" json:"-"`
}
