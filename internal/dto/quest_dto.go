package dto

import "time"

type QuestProgress struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	TargetML    float64   `json:"target_ml"`
	ProgressML  float64   `json:"progress_ml"`
	Reward      int       `json:"reward"`
	Completed   bool      `json:"completed"`
	Claimed     bool      `json:"claimed"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

type QuestClaimResponse struct {
	Quest   QuestProgress   `json:"quest"`
	Profile ProfileResponse `json:"profile"`
}
