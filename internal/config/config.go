package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// Generation API configuration
	Generator GeneratorConfig `yaml:"generator"`

	// Content pipeline configuration
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Page cache invalidation
	Revalidate RevalidateConfig `yaml:"revalidate"`

	// Trigger endpoint rate limiting
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	Name           string        `yaml:"name"`
	SSLMode        string        `yaml:"sslmode"`
	MaxOpenConns   int           `yaml:"max_open_conns"`
	MaxIdleConns   int           `yaml:"max_idle_conns"`
	MaxLifetime    time.Duration `yaml:"max_lifetime"`
	MigrationsPath string        `yaml:"migrations_path"`
}

// GeneratorConfig describes the OpenAI-compatible text generation API.
type GeneratorConfig struct {
	APIKey            string        `yaml:"api_key"`
	Endpoint          string        `yaml:"endpoint"`
	Model             string        `yaml:"model"`
	SystemPrompt      string        `yaml:"system_prompt"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute float64       `yaml:"requests_per_minute"`
}

// PipelineConfig holds content generation settings
type PipelineConfig struct {
	Secret       string `yaml:"secret"`
	BatchSize    int    `yaml:"batch_size"`
	MaxBatchSize int    `yaml:"max_batch_size"`
	// Timezone decides where "today" starts when filtering past events.
	Timezone        string   `yaml:"timezone"`
	Schedule        string   `yaml:"schedule"` // cron expression, empty disables
	ArticleType     string   `yaml:"article_type"`
	RevalidatePaths []string `yaml:"revalidate_paths"`
}

// RevalidateConfig holds the page cache invalidation webhook
type RevalidateConfig struct {
	URL     string        `yaml:"url"`
	Secret  string        `yaml:"secret"`
	Timeout time.Duration `yaml:"timeout"`
}

// RateLimitConfig limits trigger requests per client IP
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "pretty"
}

// DefaultRevalidatePaths lists every page that lists or aggregates generated articles.
var DefaultRevalidatePaths = []string{
	"/",
	"/blog",
	"/blog/events",
	"/events",
	"/sitemap.xml",
}

// Load reads configuration from an optional YAML file and environment variables.
// Environment variables take precedence over the file.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    300 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "postgres",
			Password:       "postgres",
			Name:           "events",
			SSLMode:        "disable",
			MaxOpenConns:   10,
			MaxIdleConns:   5,
			MaxLifetime:    5 * time.Minute,
			MigrationsPath: "./migrations",
		},
		Generator: GeneratorConfig{
			Endpoint:          "https://api.openai.com/v1/chat/completions",
			Model:             "gpt-4o-mini",
			Timeout:           120 * time.Second,
			RequestsPerMinute: 20,
		},
		Pipeline: PipelineConfig{
			BatchSize:       1,
			MaxBatchSize:    10,
			Timezone:        "Asia/Bahrain",
			ArticleType:     "event",
			RevalidatePaths: DefaultRevalidatePaths,
		},
		Revalidate: RevalidateConfig{
			Timeout: 10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RPS:   1,
			Burst: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getDurationEnv("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getDurationEnv("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxOpenConns = getIntEnv("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getIntEnv("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.MaxLifetime = getDurationEnv("DB_MAX_LIFETIME", c.Database.MaxLifetime)
	c.Database.MigrationsPath = getEnv("MIGRATIONS_PATH", c.Database.MigrationsPath)

	c.Generator.APIKey = getEnv("OPENAI_API_KEY", c.Generator.APIKey)
	c.Generator.Endpoint = getEnv("OPENAI_ENDPOINT", c.Generator.Endpoint)
	c.Generator.Model = getEnv("OPENAI_MODEL", c.Generator.Model)
	c.Generator.SystemPrompt = getEnv("OPENAI_SYSTEM_PROMPT", c.Generator.SystemPrompt)
	c.Generator.Timeout = getDurationEnv("OPENAI_TIMEOUT", c.Generator.Timeout)
	c.Generator.RequestsPerMinute = getFloatEnv("OPENAI_REQUESTS_PER_MINUTE", c.Generator.RequestsPerMinute)

	c.Pipeline.Secret = getEnv("BLOG_TRIGGER_SECRET", c.Pipeline.Secret)
	c.Pipeline.BatchSize = getIntEnv("PIPELINE_BATCH_SIZE", c.Pipeline.BatchSize)
	c.Pipeline.MaxBatchSize = getIntEnv("PIPELINE_MAX_BATCH_SIZE", c.Pipeline.MaxBatchSize)
	c.Pipeline.Timezone = getEnv("PIPELINE_TIMEZONE", c.Pipeline.Timezone)
	c.Pipeline.Schedule = getEnv("PIPELINE_SCHEDULE", c.Pipeline.Schedule)
	c.Pipeline.ArticleType = getEnv("PIPELINE_ARTICLE_TYPE", c.Pipeline.ArticleType)
	c.Pipeline.RevalidatePaths = getListEnv("PIPELINE_REVALIDATE_PATHS", c.Pipeline.RevalidatePaths)

	c.Revalidate.URL = getEnv("REVALIDATE_URL", c.Revalidate.URL)
	c.Revalidate.Secret = getEnv("REVALIDATE_SECRET", c.Revalidate.Secret)
	c.Revalidate.Timeout = getDurationEnv("REVALIDATE_TIMEOUT", c.Revalidate.Timeout)

	c.RateLimit.RPS = getFloatEnv("TRIGGER_RATE_LIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = getIntEnv("TRIGGER_RATE_LIMIT_BURST", c.RateLimit.Burst)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Validate checks if the configuration is valid.
// The generation API key is deliberately not required here: a missing key is
// reported per Generate call so the dashboard and cleanup keep working.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Pipeline.BatchSize < 1 {
		return fmt.Errorf("PIPELINE_BATCH_SIZE must be at least 1")
	}
	if c.Pipeline.MaxBatchSize < c.Pipeline.BatchSize {
		return fmt.Errorf("PIPELINE_MAX_BATCH_SIZE must not be below PIPELINE_BATCH_SIZE")
	}
	if _, err := time.LoadLocation(c.Pipeline.Timezone); err != nil {
		return fmt.Errorf("PIPELINE_TIMEZONE %q: %w", c.Pipeline.Timezone, err)
	}
	return nil
}

// Location resolves the pipeline timezone, falling back to UTC.
func (c *PipelineConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping blanks
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
