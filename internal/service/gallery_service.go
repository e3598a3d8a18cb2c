package service

import (
	"context"
	"errors"
	"time"

	"pc-estimate-be/internal/dto"
	"pc-estimate-be/internal/entity"
	"pc-estimate-be/internal/pkg/mailer"
	"pc-estimate-be/internal/repository/specification"
	"pc-estimate-be/internal/repository/unitofwork"
	"pc-estimate-be/pkg/conversation"

	"github.com/google/uuid"
)

// ErrNothingToSave is returned when the session has no completed
// estimate yet.
var ErrNothingToSave = errors.New("session has no estimate to save")

type IGalleryService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveEstimateRequest) (*dto.SavedEstimateResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.SavedEstimateResponse, error)
	ListAll(ctx context.Context) ([]*dto.SavedEstimateResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
	Share(ctx context.Context, req *dto.ShareEstimateRequest) error
}

type galleryService struct {
	uowFactory   unitofwork.RepositoryFactory
	convStore    *conversation.Store
	emailService mailer.IEmailService
}

func NewGalleryService(
	uowFactory unitofwork.RepositoryFactory,
	convStore *conversation.Store,
	emailService mailer.IEmailService,
) IGalleryService {
	return &galleryService{
		uowFactory:   uowFactory,
		convStore:    convStore,
		emailService: emailService,
	}
}

func (s *galleryService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveEstimateRequest) (*dto.SavedEstimateResponse, error) {
	est, err := s.convStore.LatestEstimate(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, ErrNothingToSave
	}

	saved := &entity.SavedEstimate{
		Id:         uuid.New(),
		UserId:     userId,
		SessionId:  req.SessionId,
		Title:      req.Title,
		Estimate:   *est,
		TotalPrice: est.TotalPrice,
		CreatedAt:  time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SavedEstimateRepository().Create(ctx, saved); err != nil {
		return nil, err
	}

	return toSavedEstimateResponse(saved), nil
}

func (s *galleryService) List(ctx context.Context, userId uuid.UUID) ([]*dto.SavedEstimateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	saved, err := uow.SavedEstimateRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SavedEstimateResponse, len(saved))
	for i, e := range saved {
		res[i] = toSavedEstimateResponse(e)
	}
	return res, nil
}

// ListAll returns every saved build, newest first. Serves the public
// gallery page, so no ownership filter applies.
func (s *galleryService) ListAll(ctx context.Context) ([]*dto.SavedEstimateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	saved, err := uow.SavedEstimateRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SavedEstimateResponse, len(saved))
	for i, e := range saved {
		res[i] = toSavedEstimateResponse(e)
	}
	return res, nil
}

func (s *galleryService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SavedEstimateRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("saved estimate not found")
	}

	return uow.SavedEstimateRepository().Delete(ctx, id)
}

func (s *galleryService) Share(ctx context.Context, req *dto.ShareEstimateRequest) error {
	est, err := s.convStore.LatestEstimate(ctx, req.SessionId)
	if err != nil {
		return err
	}
	if est == nil {
		return ErrNothingToSave
	}

	return s.emailService.SendEstimate(req.Email, req.Title, est)
}

func toSavedEstimateResponse(e *entity.SavedEstimate) *dto.SavedEstimateResponse {
	return &dto.SavedEstimateResponse{
		Id:         e.Id,
		Title:      e.Title,
		Estimate:   e.Estimate,
		TotalPrice: e.TotalPrice,
		CreatedAt:  e.CreatedAt,
	}
}
