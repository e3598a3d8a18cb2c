package mapper

import (
	"encoding/json"
	"time"

	"pc-estimate-be/internal/entity"
	"pc-estimate-be/internal/model"
	"pc-estimate-be/pkg/parts"

	"gorm.io/datatypes"
)

type SavedEstimateMapper struct{}

func NewSavedEstimateMapper() *SavedEstimateMapper {
	return &SavedEstimateMapper{}
}

func (m *SavedEstimateMapper) ToEntity(e *model.SavedEstimate) (*entity.SavedEstimate, error) {
	if e == nil {
		return nil, nil
	}

	var est parts.Estimate
	if len(e.Payload) > 0 {
		if err := json.Unmarshal(e.Payload, &est); err != nil {
			return nil, err
		}
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.SavedEstimate{
		Id:         e.Id,
		UserId:     e.UserId,
		SessionId:  e.SessionId,
		Title:      e.Title,
		Estimate:   est,
		TotalPrice: e.TotalPrice,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func (m *SavedEstimateMapper) ToModel(e *entity.SavedEstimate) (*model.SavedEstimate, error) {
	if e == nil {
		return nil, nil
	}

	payload, err := json.Marshal(e.Estimate)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.SavedEstimate{
		Id:         e.Id,
		UserId:     e.UserId,
		SessionId:  e.SessionId,
		Title:      e.Title,
		Payload:    datatypes.JSON(payload),
		TotalPrice: e.TotalPrice,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}, nil
}
