package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id          uuid.UUID
	Category    string
	Name        string
	Price       int
	Link        string
	Capacity    string
	Code        string
	Spec        string
	Fingerprint string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

type ProductEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	ProductId      uuid.UUID
	Category       string
	Price          int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
