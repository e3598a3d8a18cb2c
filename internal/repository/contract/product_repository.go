package contract

import (
	"context"

	"pc-estimate-be/internal/entity"
	"pc-estimate-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpsertByFingerprint creates the product or refreshes price and
	// link when a row with the same fingerprint already exists. The
	// entity is updated in place with the stored row.
	UpsertByFingerprint(ctx context.Context, product *entity.Product) error

	// CheapestByCategory is the relational fallback for retrieval:
	// the N lowest-priced products of a category, ascending.
	CheapestByCategory(ctx context.Context, category string, limit int) ([]*entity.Product, error)
}
