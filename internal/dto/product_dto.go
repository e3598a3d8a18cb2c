package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestProductRequest struct {
	Category string `json:"category" validate:"required,min=2,max=50"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Price    int    `json:"price" validate:"required,gt=0"`
	Link     string `json:"link" validate:"omitempty,url"`
	Capacity string `json:"capacity" validate:"max=100"`
	Code     string `json:"code" validate:"max=100"`
	Spec     string `json:"spec" validate:"max=2000"`
}

type IngestProductsRequest struct {
	Products []IngestProductRequest `json:"products" validate:"required,min=1,max=500,dive"`
}

type ProductResponse struct {
	Id        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	Link      string    `json:"link"`
	Spec      string    `json:"spec,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type IngestProductsResponse struct {
	Ingested int `json:"ingested"`
}

// PublishIndexProductMessage is the payload sent to the embedding
// indexer after a catalog row changes.
type PublishIndexProductMessage struct {
	ProductId uuid.UUID `json:"product_id"`
}
