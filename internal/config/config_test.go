package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:  ServerConfig{Port: 8000},
		Storage: StorageConfig{Driver: "memory"},
		Catalog: CatalogConfig{
			DefaultLimit:        12,
			MaxLimit:            100,
			SimilarDefaultLimit: 4,
			SimilarMaxLimit:     10,
		},
		Chat: ChatConfig{
			ReplyDelayMin:  time.Second,
			ReplyDelayMax:  2 * time.Second,
			RatePerSecond:  1,
			RateBurst:      5,
			MaxMessageSize: 500,
		},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PG_DSN", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 12, cfg.Catalog.DefaultLimit)
	assert.Equal(t, time.Second, cfg.Chat.ReplyDelayMin)
	assert.Equal(t, 2*time.Second, cfg.Chat.ReplyDelayMax)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoad_DSNSelectsPostgres(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/inmomax")
	t.Setenv("STORAGE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/inmomax", cfg.GetPostgreSQLDSN())
}

func TestLoad_ExplicitDriverWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/inmomax")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("CHAT_REPLY_DELAY_MIN", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.Chat.ReplyDelayMin)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port must be between 1 and 65535, got 0",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "mongo" },
			wantErr: `storage.driver must be "memory" or "postgres", got "mongo"`,
		},
		{
			name:    "default limit above max",
			mutate:  func(c *Config) { c.Catalog.DefaultLimit = 500 },
			wantErr: "catalog.default_limit must be between 1 and 100, got 500",
		},
		{
			name:    "inverted delay range",
			mutate:  func(c *Config) { c.Chat.ReplyDelayMax = 500 * time.Millisecond },
			wantErr: "chat reply delay range is invalid: [1s, 500ms]",
		},
		{
			name:    "zero burst",
			mutate:  func(c *Config) { c.Chat.RateBurst = 0 },
			wantErr: "chat rate limit must be positive, got 1.00/s burst 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestGetPostgreSQLDSN_FromParts(t *testing.T) {
	cfg := validConfig()
	cfg.PostgreSQL = PostgreSQLConfig{
		Host:     "db",
		Port:     5433,
		User:     "inmo",
		Password: "secret",
		Database: "inmomax",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db port=5433 user=inmo password=secret dbname=inmomax sslmode=require",
		cfg.GetPostgreSQLDSN(),
	)
}
