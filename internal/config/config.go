package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	ATS       ATSConfig
	History   HistoryConfig
	SMTP      SMTPConfig
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JWTSecret          string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
}

type DatabaseConfig struct {
	Connection string
}

type ATSConfig struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	CacheTTL     time.Duration
	CacheMaxCost int64
}

type HistoryConfig struct {
	Backend      string // "memory", "redis" or "postgres"
	SessionLimit int
	SearchLimit  int
	TTL          time.Duration
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	ChatBackend   string // "ats" or "ollama"
	LLMProvider   string
	OllamaBaseURL string
	LLMModel      string
}

type AssistantConfig struct {
	TypingInterval time.Duration
	DispatchEvents bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		ATS: ATSConfig{
			BaseURL:      getEnv("ATS_API_BASE_URL", "http://localhost:8080"),
			Token:        getEnv("ATS_API_TOKEN", ""),
			Timeout:      getEnvAsDuration("ATS_API_TIMEOUT", 15*time.Second),
			CacheTTL:     getEnvAsDuration("ATS_CACHE_TTL", 30*time.Second),
			CacheMaxCost: int64(getEnvAsInt("ATS_CACHE_MAX_ROWS", 100_000)),
		},
		History: HistoryConfig{
			Backend:      getEnv("HISTORY_BACKEND", "memory"),
			SessionLimit: getEnvAsInt("HISTORY_SESSION_LIMIT", 50),
			SearchLimit:  getEnvAsInt("HISTORY_SEARCH_LIMIT", 20),
			TTL:          getEnvAsDuration("HISTORY_TTL", 0),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "ATS Assistant"),
		},
		Ai: AIConfig{
			ChatBackend:   getEnv("CHAT_BACKEND", "ats"),
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
		},
		Assistant: AssistantConfig{
			TypingInterval: getEnvAsDuration("ASSISTANT_TYPING_INTERVAL", 15*time.Millisecond),
			DispatchEvents: getEnvAsBool("ASSISTANT_DISPATCH_EVENTS", true),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("30s", "2m").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
