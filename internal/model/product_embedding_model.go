package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ProductEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 / nomic dimensions
	ProductId      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	// Denormalized for filtered similarity search; kept in sync by the
	// indexer whenever the product row changes.
	Category  string         `gorm:"type:varchar(50);not null;index"`
	Price     int            `gorm:"not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ProductEmbedding) TableName() string {
	return "product_embeddings"
}
