package dto

import (
	"time"

	"github.com/google/uuid"

	"pc-estimate-be/pkg/parts"
)

type SaveEstimateRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Title     string `json:"title" validate:"required,min=1,max=255"`
}

type SavedEstimateResponse struct {
	Id         uuid.UUID      `json:"id"`
	Title      string         `json:"title"`
	Estimate   parts.Estimate `json:"estimate"`
	TotalPrice int            `json:"total_price"`
	CreatedAt  time.Time      `json:"created_at"`
}
