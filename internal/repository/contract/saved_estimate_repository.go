package contract

import (
	"context"

	"pc-estimate-be/internal/entity"
	"pc-estimate-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SavedEstimateRepository interface {
	Create(ctx context.Context, saved *entity.SavedEstimate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SavedEstimate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SavedEstimate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
