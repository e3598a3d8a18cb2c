package bootstrap

import (
	"context"
	"log"

	"pc-estimate-be/internal/config"
	"pc-estimate-be/internal/controller"
	"pc-estimate-be/internal/handler"
	"pc-estimate-be/internal/pkg/logger"
	"pc-estimate-be/internal/pkg/mailer"
	"pc-estimate-be/internal/repository/unitofwork"
	"pc-estimate-be/internal/service"
	"pc-estimate-be/internal/websocket"
	"pc-estimate-be/pkg/conversation"
	"pc-estimate-be/pkg/embedding"
	"pc-estimate-be/pkg/llm/factory"
	"pc-estimate-be/pkg/parts/enrich"
	"pc-estimate-be/pkg/parts/retrieve"

	pktNats "pc-estimate-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	EstimateController controller.IEstimateController
	ProductController  controller.IProductController
	GalleryController  controller.IGalleryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Progress
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	// Query strings repeat per category, so memoize round-trips.
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider, 0)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	convStore := conversation.NewStore(rdb)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Retrieval Pipeline
	retrievalCfg := buildRetrievalConfig(cfg.Retrieval)

	vectorIndex := service.NewVectorIndexAdapter(uowFactory, embeddingProvider)
	catalog := service.NewCatalogAdapter(uowFactory)
	retriever := retrieve.NewRetriever(vectorIndex, catalog, retrievalCfg, log.Default())
	enricher := enrich.NewEnricher(catalog, log.Default())

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Ai.IngestTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.IngestTopic,
		uowFactory,
		embeddingProvider,
	)

	authService := service.NewAuthService(uowFactory, cfg.JWT.ExpiryHour)
	productService := service.NewProductService(uowFactory, publisherService, natsPub)
	galleryService := service.NewGalleryService(uowFactory, convStore, emailService)
	estimateService := service.NewEstimateService(
		convStore,
		retriever,
		retrievalCfg,
		llmProvider,
		enricher,
		natsPub,
		wsHub,
		sysLogger,
	)

	progressHandler := handler.NewProgressHandler(wsHub, wsLogger)

	if natsSub != nil {
		notifier := service.NewNotifierService(natsSub, wsHub, wsLogger)
		go notifier.Start()
	}

	// 7. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		EstimateController: controller.NewEstimateController(estimateService),
		ProductController:  controller.NewProductController(productService),
		GalleryController:  controller.NewGalleryController(galleryService),

		ConsumerService: consumerService,

		ProgressHandler: progressHandler,
		WebSocketHub:    wsHub,
	}
}

// buildRetrievalConfig starts from the built-in defaults and applies any
// non-zero env override.
func buildRetrievalConfig(overrides config.RetrievalConfig) retrieve.Config {
	cfg := retrieve.DefaultConfig()
	if overrides.DefaultBudget > 0 {
		cfg.DefaultBudget = overrides.DefaultBudget
	}
	if overrides.ShortlistSize > 0 {
		cfg.ShortlistSize = overrides.ShortlistSize
	}
	if overrides.OverFetchFactor > 0 {
		cfg.OverFetchFactor = overrides.OverFetchFactor
	}
	if overrides.MinUsable > 0 {
		cfg.MinUsable = overrides.MinUsable
	}
	if overrides.LowBudgetThreshold > 0 {
		cfg.LowBudgetThreshold = overrides.LowBudgetThreshold
	}
	if overrides.DDR5Threshold > 0 {
		cfg.DDR5Threshold = overrides.DDR5Threshold
	}
	if overrides.NVMeThreshold > 0 {
		cfg.NVMeThreshold = overrides.NVMeThreshold
	}
	if overrides.LiquidThreshold > 0 {
		cfg.LiquidCoolerThreshold = overrides.LiquidThreshold
	}
	return cfg
}
