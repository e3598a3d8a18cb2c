package implementation

import (
	"context"
	"errors"

	"pc-estimate-be/internal/entity"
	"pc-estimate-be/internal/mapper"
	"pc-estimate-be/internal/model"
	"pc-estimate-be/internal/repository/contract"
	"pc-estimate-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SavedEstimateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SavedEstimateMapper
}

func NewSavedEstimateRepository(db *gorm.DB) contract.SavedEstimateRepository {
	return &SavedEstimateRepositoryImpl{
		db:     db,
		mapper: mapper.NewSavedEstimateMapper(),
	}
}

func (r *SavedEstimateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SavedEstimateRepositoryImpl) Create(ctx context.Context, saved *entity.SavedEstimate) error {
	m, err := r.mapper.ToModel(saved)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	stored, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*saved = *stored
	return nil
}

func (r *SavedEstimateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SavedEstimate{}, id).Error
}

func (r *SavedEstimateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SavedEstimate, error) {
	var m model.SavedEstimate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *SavedEstimateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SavedEstimate, error) {
	var models []*model.SavedEstimate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SavedEstimate, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			// A corrupt payload should not hide the rest of the gallery.
			continue
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *SavedEstimateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SavedEstimate{}).Count(&count).Error
	return count, err
}
