package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=5000"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=http://localhost:5173"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth     AuthConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Analysis AnalysisConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=reflectify"`
}

// RedisConfig configures the revocation cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AnalysisConfig struct {
	APIKey       string        `env:"GOOGLE_API_KEY,       required"`
	EmotionModel string        `env:"EMOTION_MODEL,        default=gemini-2.0-flash"`
	ExpenseModel string        `env:"EXPENSE_MODEL,        default=gemini-1.5-flash"`
	Timeout      time.Duration `env:"ANALYSIS_TIMEOUT,     default=30s"`
	MaxRetries   uint64        `env:"ANALYSIS_MAX_RETRIES, default=2"`
	Backoff      time.Duration `env:"ANALYSIS_BACKOFF,     default=500ms"`
}

// IsProduction reports whether ENV selects production behaviour, such as
// JSON-only logs.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a .env file when present and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return loadFrom(ctx, envconfig.OsLookuper())
}

func loadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.Analysis.Timeout <= 0 {
		return errors.New("ANALYSIS_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
