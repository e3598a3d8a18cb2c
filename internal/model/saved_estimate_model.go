package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SavedEstimate struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	SessionId  string         `gorm:"type:varchar(100);index"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Payload    datatypes.JSON `gorm:"type:jsonb;not null"`
	TotalPrice int            `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (SavedEstimate) TableName() string {
	return "saved_estimates"
}
