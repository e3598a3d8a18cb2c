package entity

import (
	"time"

	"github.com/google/uuid"

	"pc-estimate-be/pkg/parts"
)

type SavedEstimate struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	SessionId  string
	Title      string
	Estimate   parts.Estimate
	TotalPrice int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
