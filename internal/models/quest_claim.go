package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestClaim records that a profile collected the reward of a quest for the
// period starting at PeriodStart. A quest pays out once per period.
type QuestClaim struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_quest_claim_period,priority:1" json:"-"`
	QuestID     string    `gorm:"size:32;not null;uniqueIndex:idx_quest_claim_period,priority:2" json:"quest_id"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_quest_claim_period,priority:3" json:"period_start"`
	Reward      int       `gorm:"not null" json:"reward"`
	CreatedAt   time.Time `json:"created_at"`
	Profile     Profile   `gorm:"foreignKey:ProfileID" json:"-"`
}
