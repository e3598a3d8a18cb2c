package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Name        string    `gorm:"type:varchar(255);not null;index"`
	Price       int       `gorm:"not null;index"`
	Link        string    `gorm:"type:text"`
	Capacity    string    `gorm:"type:varchar(100)"`
	Code        string    `gorm:"type:varchar(100)"`
	Spec        string    `gorm:"type:text"`
	Fingerprint string    `gorm:"type:varchar(40);uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
