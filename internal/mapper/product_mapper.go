package mapper

import (
	"time"

	"pc-estimate-be/internal/entity"
	"pc-estimate-be/internal/model"

	"gorm.io/gorm"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(e *model.Product) *entity.Product {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Product{
		Id:          e.Id,
		Category:    e.Category,
		Name:        e.Name,
		Price:       e.Price,
		Link:        e.Link,
		Capacity:    e.Capacity,
		Code:        e.Code,
		Spec:        e.Spec,
		Fingerprint: e.Fingerprint,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   e.DeletedAt.Valid,
	}
}

func (m *ProductMapper) ToModel(e *entity.Product) *model.Product {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Product{
		Id:          e.Id,
		Category:    e.Category,
		Name:        e.Name,
		Price:       e.Price,
		Link:        e.Link,
		Capacity:    e.Capacity,
		Code:        e.Code,
		Spec:        e.Spec,
		Fingerprint: e.Fingerprint,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
