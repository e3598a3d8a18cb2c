package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pc-estimate-be/internal/constant"
	"pc-estimate-be/internal/pkg/logger"
	"pc-estimate-be/internal/repository/specification"
	"pc-estimate-be/internal/repository/unitofwork"
	"pc-estimate-be/internal/websocket"
	"pc-estimate-be/pkg/conversation"
	"pc-estimate-be/pkg/embedding"
	"pc-estimate-be/pkg/events"
	"pc-estimate-be/pkg/llm"
	pktNats "pc-estimate-be/pkg/nats"
	"pc-estimate-be/pkg/parts"
	"pc-estimate-be/pkg/parts/enrich"
	"pc-estimate-be/pkg/parts/interpret"
	"pc-estimate-be/pkg/parts/parse"
	"pc-estimate-be/pkg/parts/prompt"
	"pc-estimate-be/pkg/parts/rank"
	"pc-estimate-be/pkg/parts/retrieve"

	"pc-estimate-be/internal/dto"
)

// ErrNoCandidates is returned when retrieval finds nothing usable for
// one or more required categories, so no honest estimate is possible.
var ErrNoCandidates = errors.New("no candidate products for required categories")

// ErrIncompleteEstimate is returned when the generator's structured
// reply still lacks required categories after catalog reconciliation.
var ErrIncompleteEstimate = errors.New("estimate missing required categories")

type IEstimateService interface {
	Query(ctx context.Context, req *dto.EstimateQueryRequest) (*dto.EstimateQueryResponse, error)
}

type estimateService struct {
	convStore      *conversation.Store
	retriever      *retrieve.Retriever
	cfg            retrieve.Config
	llmProvider    llm.LLMProvider
	enricher       *enrich.Enricher
	eventPublisher *pktNats.Publisher
	hub            *websocket.Hub
	logger         logger.ILogger
}

func NewEstimateService(
	convStore *conversation.Store,
	retriever *retrieve.Retriever,
	cfg retrieve.Config,
	llmProvider llm.LLMProvider,
	enricher *enrich.Enricher,
	eventPublisher *pktNats.Publisher,
	hub *websocket.Hub,
	log logger.ILogger,
) IEstimateService {
	return &estimateService{
		convStore:      convStore,
		retriever:      retriever,
		cfg:            cfg,
		llmProvider:    llmProvider,
		enricher:       enricher,
		eventPublisher: eventPublisher,
		hub:            hub,
		logger:         log,
	}
}

func (s *estimateService) Query(ctx context.Context, req *dto.EstimateQueryRequest) (*dto.EstimateQueryResponse, error) {
	sessionID := req.SessionId

	// 1. Interpret the free-text request.
	s.progress(sessionID, "interpreting", "")
	query := interpret.Parse(req.Message)
	budget := query.EffectiveBudget(s.cfg.DefaultBudget)

	// 2. Load refinement context before recording the new turn.
	previous, err := s.convStore.LatestEstimate(ctx, sessionID)
	if err != nil {
		s.logger.Warn("EstimateService", "Failed to load previous estimate", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}

	if err := s.convStore.Append(ctx, sessionID, conversation.Turn{
		Role:    conversation.RoleUser,
		Content: req.Message,
	}); err != nil {
		s.logger.Warn("EstimateService", "Failed to record user turn", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}

	// 3. Retrieve candidates per category.
	s.progress(sessionID, "retrieving", fmt.Sprintf("budget %d", budget))
	candidates := s.retriever.RetrieveAll(ctx, query)

	shortlists := make(map[string][]parts.Candidate, len(candidates))
	var missing []string
	for key, list := range candidates {
		shortlist := rank.Shortlist(list, s.cfg.ShortlistSize)
		if len(shortlist) == 0 {
			missing = append(missing, key)
			continue
		}
		shortlists[key] = shortlist
	}
	if len(missing) > 0 {
		s.progress(sessionID, "failed", "missing categories: "+strings.Join(missing, ", "))
		s.publishFailed(ctx, sessionID, "no candidates for: "+strings.Join(missing, ", "))
		return nil, fmt.Errorf("%w: %s", ErrNoCandidates, strings.Join(missing, ", "))
	}

	// 4. Build the constrained prompt and ask the model.
	s.progress(sessionID, "generating", "")
	builder := prompt.NewBuilder(query, budget, shortlists, previous)
	history := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.EstimateSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: builder.Build()},
	}
	raw, err := s.llmProvider.Chat(ctx, history)
	if err != nil {
		s.progress(sessionID, "failed", "generation error")
		s.publishFailed(ctx, sessionID, "generation error")
		return nil, fmt.Errorf("generate estimate: %w", err)
	}

	// 5. Recover structure, then reconcile against the catalog.
	result := parse.Extract(raw)
	if !result.Structured {
		s.logger.Info("EstimateService", "Generator returned free text", map[string]interface{}{
			"session_id": sessionID,
		})
		s.appendAssistantTurn(ctx, sessionID, result.Raw)
		s.progress(sessionID, "done", "free-text reply")
		s.publishFailed(ctx, sessionID, "unstructured reply")
		return &dto.EstimateQueryResponse{
			SessionId: sessionID,
			ReplyRaw:  result.Raw,
		}, nil
	}

	s.progress(sessionID, "enriching", "")
	s.enricher.Enrich(ctx, result.Estimate)

	// An estimate is only a success when every required category is
	// filled with a priced part.
	if incomplete := incompleteKeys(result.Estimate); len(incomplete) > 0 {
		joined := strings.Join(incomplete, ", ")
		s.progress(sessionID, "failed", "incomplete estimate: "+joined)
		s.publishFailed(ctx, sessionID, "incomplete estimate: "+joined)
		return nil, fmt.Errorf("%w: %s", ErrIncompleteEstimate, joined)
	}

	if stored, err := json.Marshal(result.Estimate); err == nil {
		s.appendAssistantTurn(ctx, sessionID, string(stored))
	}

	if s.eventPublisher != nil {
		evt := events.NewEstimateCreatedEvent(sessionID, budget, result.Estimate.TotalPrice)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("EstimateService", "Failed to publish ESTIMATE_CREATED", map[string]interface{}{
				"session_id": sessionID, "error": err.Error(),
			})
		}
	}

	s.progress(sessionID, "done", "")
	return &dto.EstimateQueryResponse{
		SessionId: sessionID,
		Estimate:  result.Estimate,
	}, nil
}

// incompleteKeys lists required categories that are absent, unnamed,
// or carry a non-positive price after enrichment.
func incompleteKeys(e *parts.Estimate) []string {
	missing := e.MissingKeys()
	seen := make(map[string]bool, len(missing))
	for _, key := range missing {
		seen[key] = true
	}
	for _, key := range parts.RequiredKeys {
		if seen[key] {
			continue
		}
		if p := e.Part(key); p != nil && p.Price <= 0 {
			missing = append(missing, key)
		}
	}
	return missing
}

func (s *estimateService) appendAssistantTurn(ctx context.Context, sessionID, content string) {
	if err := s.convStore.Append(ctx, sessionID, conversation.Turn{
		Role:    conversation.RoleAssistant,
		Content: content,
	}); err != nil {
		s.logger.Warn("EstimateService", "Failed to record assistant turn", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

func (s *estimateService) progress(sessionID, stage, detail string) {
	if s.hub == nil {
		return
	}
	s.hub.SendProgress(websocket.ProgressMessage{
		SessionId: sessionID,
		Stage:     stage,
		Detail:    detail,
	})
}

func (s *estimateService) publishFailed(ctx context.Context, sessionID, reason string) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEstimateFailedEvent(sessionID, reason)); err != nil {
		s.logger.Warn("EstimateService", "Failed to publish ESTIMATE_FAILED", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

// --- Retrieval adapters over the repository layer ---

// VectorIndexAdapter satisfies retrieve.VectorIndex by embedding the
// query text and running a filtered pgvector search, then resolving
// embedding rows back to catalog products.
type VectorIndexAdapter struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewVectorIndexAdapter(uowFactory unitofwork.RepositoryFactory, provider embedding.EmbeddingProvider) *VectorIndexAdapter {
	return &VectorIndexAdapter{
		uowFactory:        uowFactory,
		embeddingProvider: provider,
	}
}

func (a *VectorIndexAdapter) Search(ctx context.Context, queryText, category string, minPrice, maxPrice, topK int) ([]parts.Candidate, error) {
	res, err := a.embeddingProvider.Generate(queryText, constant.EmbeddingTaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := a.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ProductEmbeddingRepository().SearchSimilarFiltered(
		ctx, res.Embedding.Values, category, minPrice, maxPrice, topK,
	)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, nil
	}

	productRepo := uow.ProductRepository()
	out := make([]parts.Candidate, 0, len(scored))
	for _, hit := range scored {
		product, err := productRepo.FindOne(ctx, specification.ByID{ID: hit.Embedding.ProductId})
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue // embedding row outlived its product
		}
		out = append(out, parts.Candidate{
			Name:     product.Name,
			Category: product.Category,
			Price:    product.Price,
			Link:     product.Link,
		})
	}
	return out, nil
}

// CatalogAdapter satisfies retrieve.Catalog and enrich.Lookup with
// plain relational queries.
type CatalogAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCatalogAdapter(uowFactory unitofwork.RepositoryFactory) *CatalogAdapter {
	return &CatalogAdapter{uowFactory: uowFactory}
}

func (a *CatalogAdapter) CheapestByCategory(ctx context.Context, category string, limit int) ([]parts.Candidate, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().CheapestByCategory(ctx, category, limit)
	if err != nil {
		return nil, err
	}
	out := make([]parts.Candidate, len(products))
	for i, p := range products {
		out[i] = parts.Candidate{
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
			Link:     p.Link,
		}
	}
	return out, nil
}

func (a *CatalogAdapter) ProductByName(ctx context.Context, name string) (*parts.Candidate, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return &parts.Candidate{
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		Link:     product.Link,
	}, nil
}
