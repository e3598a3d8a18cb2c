package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pc-estimate-be/internal/dto"
	"pc-estimate-be/internal/entity"
	"pc-estimate-be/internal/repository/specification"
	"pc-estimate-be/internal/repository/unitofwork"
	"pc-estimate-be/pkg/events"
	pktNats "pc-estimate-be/pkg/nats"
	"pc-estimate-be/pkg/utils"

	"github.com/google/uuid"
)

type IProductService interface {
	Ingest(ctx context.Context, req *dto.IngestProductsRequest) (*dto.IngestProductsResponse, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]*dto.ProductResponse, error)
	List(ctx context.Context, page, limit int, category string) ([]*dto.ProductResponse, error)
}

type productService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewProductService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IProductService {
	return &productService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *productService) Ingest(ctx context.Context, req *dto.IngestProductsRequest) (*dto.IngestProductsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ingested := 0
	for _, p := range req.Products {
		product := &entity.Product{
			Id:          uuid.New(),
			Category:    p.Category,
			Name:        p.Name,
			Price:       p.Price,
			Link:        p.Link,
			Capacity:    p.Capacity,
			Code:        p.Code,
			Spec:        p.Spec,
			Fingerprint: utils.ProductFingerprint(p.Category, p.Capacity, p.Code, p.Name),
			CreatedAt:   time.Now(),
		}

		if err := uow.ProductRepository().UpsertByFingerprint(ctx, product); err != nil {
			return nil, fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
		ingested++

		// Hand off to the embedding indexer.
		msgPayload := dto.PublishIndexProductMessage{ProductId: product.Id}
		msgJson, err := json.Marshal(msgPayload)
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			return nil, err
		}

		if s.eventPublisher != nil {
			evt := events.NewProductIngestedEvent(product.Id.String(), product.Category)
			// Auxiliary; the ingest itself already succeeded.
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish PRODUCT_INGESTED event: %v\n", err)
			}
		}
	}

	return &dto.IngestProductsResponse{Ingested: ingested}, nil
}

func (s *productService) ListByCategory(ctx context.Context, category string, limit int) ([]*dto.ProductResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx,
		specification.ByCategory{Category: category},
		specification.OrderBy{Field: "price", Desc: false},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	return toProductResponses(products), nil
}

// List pages through the whole catalog, optionally narrowed to one
// category.
func (s *productService) List(ctx context.Context, page, limit int, category string) ([]*dto.ProductResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

func toProductResponses(products []*entity.Product) []*dto.ProductResponse {
	res := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		res[i] = &dto.ProductResponse{
			Id:        p.Id,
			Category:  p.Category,
			Name:      p.Name,
			Price:     p.Price,
			Link:      p.Link,
			Spec:      p.Spec,
			CreatedAt: p.CreatedAt,
		}
	}
	return res
}
