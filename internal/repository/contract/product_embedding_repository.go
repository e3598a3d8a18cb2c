package contract

import (
	"context"

	"pc-estimate-be/internal/entity"
	"pc-estimate-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredProductEmbedding wraps ProductEmbedding with its similarity score
type ScoredProductEmbedding struct {
	Embedding  *entity.ProductEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ProductEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ProductEmbedding) error
	Update(ctx context.Context, embedding *entity.ProductEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProductId(ctx context.Context, productId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProductEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpsertByProductId replaces a product's embedding row, keeping the
	// denormalized category and price columns in sync.
	UpsertByProductId(ctx context.Context, embedding *entity.ProductEmbedding) error

	// SearchSimilarFiltered runs cosine-distance search restricted to
	// one category and an inclusive price window. maxPrice <= 0 lifts
	// the ceiling.
	SearchSimilarFiltered(ctx context.Context, embedding []float32, category string, minPrice, maxPrice, limit int) ([]*ScoredProductEmbedding, error)
}
