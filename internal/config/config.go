package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	PostgreSQL PostgreSQLConfig
	Catalog    CatalogConfig
	Chat       ChatConfig
	Logging    LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	StaticDir      string
}

// StorageConfig selects the property repository backend
type StorageConfig struct {
	Driver string // "memory" or "postgres"
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence over the parts
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// CatalogConfig holds listing pagination limits
type CatalogConfig struct {
	DefaultLimit        int
	MaxLimit            int
	SimilarDefaultLimit int
	SimilarMaxLimit     int
	// APIBaseURL is where catalog.Client sends its requests.
	APIBaseURL   string
	FetchTimeout time.Duration
}

// ChatConfig holds chatbot configuration
type ChatConfig struct {
	ReplyDelayMin  time.Duration
	ReplyDelayMax  time.Duration
	RatePerSecond  float64
	RateBurst      int
	MaxMessageSize int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Env   string // prod, dev or local
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
			AllowedMethods: getEnvAsList("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnvAsList("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
			StaticDir:      getEnv("STATIC_DIR", "./web"),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "memory"),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "inmomax"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Catalog: CatalogConfig{
			DefaultLimit:        getEnvAsInt("CATALOG_DEFAULT_LIMIT", 12),
			MaxLimit:            getEnvAsInt("CATALOG_MAX_LIMIT", 100),
			SimilarDefaultLimit: getEnvAsInt("CATALOG_SIMILAR_DEFAULT_LIMIT", 4),
			SimilarMaxLimit:     getEnvAsInt("CATALOG_SIMILAR_MAX_LIMIT", 10),
			APIBaseURL:          getEnv("CATALOG_API_BASE_URL", "http://localhost:8000"),
			FetchTimeout:        getEnvAsDuration("CATALOG_FETCH_TIMEOUT", 5*time.Second),
		},
		Chat: ChatConfig{
			ReplyDelayMin:  getEnvAsDuration("CHAT_REPLY_DELAY_MIN", time.Second),
			ReplyDelayMax:  getEnvAsDuration("CHAT_REPLY_DELAY_MAX", 2*time.Second),
			RatePerSecond:  getEnvAsFloat("CHAT_RATE_PER_SECOND", 1),
			RateBurst:      getEnvAsInt("CHAT_RATE_BURST", 5),
			MaxMessageSize: getEnvAsInt("CHAT_MAX_MESSAGE_SIZE", 500),
		},
		Logging: LoggingConfig{
			Env:   getEnv("APP_ENV", "prod"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.PostgreSQL.DSN != "" && os.Getenv("STORAGE_DRIVER") == "" {
		cfg.Storage.Driver = "postgres"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("storage.driver must be \"memory\" or \"postgres\", got %q", c.Storage.Driver)
	}
	if c.Catalog.DefaultLimit <= 0 || c.Catalog.DefaultLimit > c.Catalog.MaxLimit {
		return fmt.Errorf("catalog.default_limit must be between 1 and %d, got %d", c.Catalog.MaxLimit, c.Catalog.DefaultLimit)
	}
	if c.Catalog.SimilarDefaultLimit <= 0 || c.Catalog.SimilarDefaultLimit > c.Catalog.SimilarMaxLimit {
		return fmt.Errorf("catalog.similar_default_limit must be between 1 and %d, got %d", c.Catalog.SimilarMaxLimit, c.Catalog.SimilarDefaultLimit)
	}
	if c.Chat.ReplyDelayMin < 0 || c.Chat.ReplyDelayMax < c.Chat.ReplyDelayMin {
		return fmt.Errorf("chat reply delay range is invalid: [%s, %s]", c.Chat.ReplyDelayMin, c.Chat.ReplyDelayMax)
	}
	if c.Chat.RatePerSecond <= 0 || c.Chat.RateBurst <= 0 {
		return fmt.Errorf("chat rate limit must be positive, got %.2f/s burst %d", c.Chat.RatePerSecond, c.Chat.RateBurst)
	}
	if c.Chat.MaxMessageSize <= 0 {
		return fmt.Errorf("chat.max_message_size must be positive, got %d", c.Chat.MaxMessageSize)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
