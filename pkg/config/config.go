package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LLM providers
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderMock   = "mock"
)

// Speech providers
const (
	SpeechProviderRemote     = "remote"
	SpeechProviderAssemblyAI = "assemblyai"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Auth     AuthConfig
	LLM      LLMConfig
	Ollama   OllamaConfig
	Gemini   GeminiConfig
	Speech   SpeechConfig
	Assembly AssemblyAIConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
	MaxUploadBytes  int64
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConns        int
	MinConns        int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// StorageConfig holds storage configuration for the summary archive
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PresignExpiry   time.Duration
}

// AuthConfig holds Supabase token verification settings
type AuthConfig struct {
	SupabaseJWTSecret string
	Audience          string
}

// LLMConfig selects the summary generator
type LLMConfig struct {
	Provider string
}

// OllamaConfig holds settings for the local Ollama daemon (OLLAMA_*)
type OllamaConfig struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:11434"`
	Model       string        `envconfig:"MODEL" default:"tinyllama:latest"`
	Temperature float64       `envconfig:"TEMPERATURE" default:"0.3"`
	TopP        float64       `envconfig:"TOP_P" default:"0.9"`
	TopK        int           `envconfig:"TOP_K" default:"40"`
	NumPredict  int           `envconfig:"NUM_PREDICT" default:"1500"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"60s"`
	MaxElapsed  time.Duration `envconfig:"RETRY_MAX_ELAPSED" default:"20s"`
}

// GeminiConfig holds Google Gemini settings (GEMINI_*)
type GeminiConfig struct {
	APIKey          string  `envconfig:"API_KEY"`
	Model           string  `envconfig:"MODEL" default:"gemini-2.0-flash"`
	Temperature     float32 `envconfig:"TEMPERATURE" default:"0.4"`
	TopK            float32 `envconfig:"TOP_K" default:"32"`
	TopP            float32 `envconfig:"TOP_P" default:"0.8"`
	MaxOutputTokens int32   `envconfig:"MAX_OUTPUT_TOKENS" default:"1024"`
}

// SpeechConfig holds speech-to-text settings (SPEECH_*)
type SpeechConfig struct {
	Provider   string        `envconfig:"PROVIDER" default:"remote"`
	URL        string        `envconfig:"URL" default:"https://speech2text-6n0t.onrender.com/api/speech2text"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"120s"`
	MaxElapsed time.Duration `envconfig:"RETRY_MAX_ELAPSED" default:"30s"`
}

// AssemblyAIConfig holds AssemblyAI settings (ASSEMBLYAI_*)
type AssemblyAIConfig struct {
	APIKey       string `envconfig:"API_KEY"`
	LanguageCode string `envconfig:"LANGUAGE_CODE" default:"en"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", "http://localhost:3000"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
			MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_BYTES", 25<<20)),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "meeting_minutes"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("SUMMARY_CACHE_TTL", "24h"),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", ""),
			BucketName:      getEnv("STORAGE_BUCKET", "meeting-minutes"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PresignExpiry:   getEnvAsDuration("STORAGE_PRESIGN_EXPIRY", "15m"),
		},
		Auth: AuthConfig{
			SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
			Audience:          getEnv("SUPABASE_JWT_AUDIENCE", "authenticated"),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderOllama)),
		},
	}

	// Provider blocks are decoded by prefix
	if err := envconfig.Process("OLLAMA", &config.Ollama); err != nil {
		return nil, fmt.Errorf("failed to load ollama config: %w", err)
	}
	if err := envconfig.Process("GEMINI", &config.Gemini); err != nil {
		return nil, fmt.Errorf("failed to load gemini config: %w", err)
	}
	if err := envconfig.Process("SPEECH", &config.Speech); err != nil {
		return nil, fmt.Errorf("failed to load speech config: %w", err)
	}
	if err := envconfig.Process("ASSEMBLYAI", &config.Assembly); err != nil {
		return nil, fmt.Errorf("failed to load assemblyai config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOllama, ProviderMock:
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}

	switch c.Speech.Provider {
	case SpeechProviderRemote:
		if c.Speech.URL == "" {
			return fmt.Errorf("SPEECH_URL is required when SPEECH_PROVIDER=remote")
		}
	case SpeechProviderAssemblyAI:
		if c.Assembly.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required when SPEECH_PROVIDER=assemblyai")
		}
	default:
		return fmt.Errorf("unsupported SPEECH_PROVIDER %q", c.Speech.Provider)
	}

	if c.Storage.Enabled && (c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "") {
		return fmt.Errorf("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required when STORAGE_ENABLED=true")
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
