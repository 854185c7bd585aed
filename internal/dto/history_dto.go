package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateHistoryRequest struct {
	Amount *float64 `json:"amount"`
}

type HistoryResponse struct {
	ID     uuid.UUID `json:"id"`
	Amount float64   `json:"amount"`
	Time   time.Time `json:"time"`
}

type HistorySummary struct {
	Period string     `json:"periodo"`
	From   *time.Time `json:"from,omitempty"`
	To     *time.Time `json:"to,omitempty"`
	Count  int64      `json:"count"`
	Total  float64    `json:"total"`
}
