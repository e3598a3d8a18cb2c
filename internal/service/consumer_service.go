package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"pc-estimate-be/internal/constant"
	"pc-estimate-be/internal/dto"
	"pc-estimate-be/internal/entity"
	"pc-estimate-be/internal/repository/specification"
	"pc-estimate-be/internal/repository/unitofwork"
	"pc-estimate-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the embedding indexer: it keeps one vector row per
// catalog product, refreshed whenever the product is re-ingested.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexProductMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: payload.ProductId})
	if err != nil {
		log.Printf("[ERROR] Failed to get product %s: %v", payload.ProductId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if product == nil {
		log.Printf("[WARN] Product not found, skipping index: %s", payload.ProductId)
		msg.Ack() // Deleted between publish and consume
		return
	}

	document := buildProductDocument(product)

	res, err := cs.embeddingProvider.Generate(document, constant.EmbeddingTaskDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for product %s: %v", product.Id, err)
		msg.Nack()
		return
	}

	row := &entity.ProductEmbedding{
		Id:             uuid.New(),
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		ProductId:      product.Id,
		Category:       product.Category,
		Price:          product.Price,
		CreatedAt:      time.Now(),
	}

	if err := uow.ProductEmbeddingRepository().UpsertByProductId(ctx, row); err != nil {
		log.Printf("[ERROR] Failed to upsert embedding for product %s: %v", product.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Indexed product %s (%s)", product.Id, product.Category)
	msg.Ack()
}

// buildProductDocument renders the sentence that gets embedded. The
// phrasing mirrors what retrieval queries look like, so same-category
// products land close in the vector space.
func buildProductDocument(p *entity.Product) string {
	spec := p.Spec
	if spec == "" {
		specParts := make([]string, 0, 2)
		if p.Capacity != "" {
			specParts = append(specParts, p.Capacity)
		}
		if p.Code != "" {
			specParts = append(specParts, p.Code)
		}
		spec = strings.Join(specParts, " | ")
	}
	if spec == "" {
		spec = p.Name
	}
	return fmt.Sprintf("%s 제품 %s의 주요 스펙은 %s입니다.", p.Category, p.Name, spec)
}
