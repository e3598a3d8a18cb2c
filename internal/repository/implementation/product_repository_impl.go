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
	"gorm.io/gorm/clause"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *ProductRepositoryImpl) UpsertByFingerprint(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)

	// Same fingerprint means the same physical product; re-ingesting
	// only refreshes the volatile columns.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "fingerprint"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"price", "capacity", "spec", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	// OnConflict does not report the surviving row's id, so read it back.
	stored, err := r.FindOne(ctx, specification.ByFingerprint{Fingerprint: m.Fingerprint})
	if err != nil {
		return err
	}
	if stored == nil {
		return gorm.ErrRecordNotFound
	}
	*product = *stored
	return nil
}

func (r *ProductRepositoryImpl) CheapestByCategory(ctx context.Context, category string, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.FindAll(ctx,
		specification.ByCategory{Category: category},
		specification.PriceBetween{Min: 1},
		specification.OrderBy{Field: "price", Desc: false},
		specification.Pagination{Limit: limit},
	)
}
