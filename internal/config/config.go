package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	JWT       JWTConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	GeminiAPIKey      string
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "openai"
	LLMModel          string // e.g. "gpt-4o-mini", "llama3"
	LLMBaseURL        string
	LLMAPIKey         string
	IngestTopic       string // product ingest -> embedding indexer
}

// RetrievalConfig carries env overrides for the candidate retrieval
// knobs. Zero values mean "use the built-in default".
type RetrievalConfig struct {
	DefaultBudget      int
	ShortlistSize      int
	OverFetchFactor    int
	MinUsable          int
	LowBudgetThreshold int
	DDR5Threshold      int
	NVMeThreshold      int
	LiquidThreshold    int
}

type JWTConfig struct {
	Secret     string
	ExpiryHour int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "PC Estimate"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:         getEnv("LLM_API_KEY", ""),
			IngestTopic:       getEnv("PRODUCT_INGEST_TOPIC_NAME", "PRODUCT_INGESTED"),
		},
		Retrieval: RetrievalConfig{
			DefaultBudget:      getEnvAsInt("RETRIEVAL_DEFAULT_BUDGET", 0),
			ShortlistSize:      getEnvAsInt("RETRIEVAL_SHORTLIST_SIZE", 0),
			OverFetchFactor:    getEnvAsInt("RETRIEVAL_OVERFETCH_FACTOR", 0),
			MinUsable:          getEnvAsInt("RETRIEVAL_MIN_USABLE", 0),
			LowBudgetThreshold: getEnvAsInt("RETRIEVAL_LOW_BUDGET_THRESHOLD", 0),
			DDR5Threshold:      getEnvAsInt("RETRIEVAL_DDR5_THRESHOLD", 0),
			NVMeThreshold:      getEnvAsInt("RETRIEVAL_NVME_THRESHOLD", 0),
			LiquidThreshold:    getEnvAsInt("RETRIEVAL_LIQUID_THRESHOLD", 0),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			ExpiryHour: getEnvAsInt("JWT_EXPIRY_HOUR", 72),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
