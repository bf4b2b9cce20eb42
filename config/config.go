package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultLLMModel      = "openai/gpt-4o-mini"
	defaultPresignTTL    = 15 * time.Minute
	defaultImageMaxWidth = 1024
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Model endpoint configuration. Both values may be empty at startup;
	// the proxy endpoints report their absence per request.
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// Object storage configuration
	S3BucketName  string
	AWSRegion     string
	S3Endpoint    string
	PresignTTL    time.Duration
	ImageMaxWidth uint

	// HTTP surface
	AllowedOrigins  []string
	CameraRateLimit int
	RecipeRateLimit int
}

// DSN builds the postgres connection string
func (c *Config) DSN() string {
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode,
	)
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI, Development, Test, Production:
		if err := loadConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadConfig(cfg *Config) error {
	cfg.ServerHost = lookup("SERVER_HOST", "0.0.0.0")
	cfg.ServerPort = lookup("SERVER_PORT", "8080")

	cfg.DBDriver = strings.ToLower(lookup("DB_DRIVER", "postgres"))
	cfg.DBHost = lookup("DB_HOST", "localhost")
	cfg.DBPort = lookup("DB_PORT", "5432")
	cfg.DBUser = lookup("DB_USER", "")
	cfg.DBPassword = lookup("DB_PASSWORD", "")
	cfg.DBName = lookup("DB_NAME", "pantry")
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "disable")
	cfg.SQLitePath = lookup("SQLITE_PATH", "pantry.db")
	cfg.MigrationsDir = lookup("MIGRATIONS_DIR", "migrations")

	cfg.RedisHost = lookup("REDIS_HOST", "")
	cfg.RedisPort = lookup("REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "")
	cfg.RedisURL = lookup("REDIS_URL", "")
	cfg.RedisDB = 0 // This is a constant, not a secret

	apiKey, err := loadAPIKey()
	if err != nil {
		return err
	}
	cfg.LLMAPIKey = apiKey
	cfg.LLMBaseURL = lookup("OPENROUTER_ENDPOINT", "")
	cfg.LLMModel = lookup("LLM_MODEL", defaultLLMModel)

	cfg.S3BucketName = lookup("S3_BUCKET_NAME", "pantry-tracker-captures")
	cfg.AWSRegion = lookup("AWS_REGION", "us-east-1")
	cfg.S3Endpoint = lookup("S3_ENDPOINT", "")

	cfg.PresignTTL = defaultPresignTTL
	if raw := lookup("S3_PRESIGN_TTL", ""); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid S3_PRESIGN_TTL %q: %w", raw, err)
		}
		cfg.PresignTTL = ttl
	}

	maxWidth, err := lookupInt("IMAGE_MAX_WIDTH", defaultImageMaxWidth)
	if err != nil {
		return err
	}
	cfg.ImageMaxWidth = uint(maxWidth)

	if cfg.CameraRateLimit, err = lookupInt("CAMERA_RATE_LIMIT", 30); err != nil {
		return err
	}
	if cfg.RecipeRateLimit, err = lookupInt("RECIPE_RATE_LIMIT", 10); err != nil {
		return err
	}

	cfg.AllowedOrigins = splitList(lookup("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	return nil
}

// loadAPIKey reads the model credential from OPENROUTER_API_KEY or the file
// named by OPENROUTER_API_KEY_FILE. A missing key is not an error here.
func loadAPIKey() (string, error) {
	if key := lookup("OPENROUTER_API_KEY", ""); key != "" {
		return key, nil
	}
	keyFile := os.Getenv("OPENROUTER_API_KEY_FILE")
	if keyFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// lookup returns the environment value, then the Docker secret, then the fallback
func lookup(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return fallback
}

func lookupInt(name string, fallback int) (int, error) {
	raw := lookup(name, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", name, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
