package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// OpenAI configuration
	OpenAIAPIKey          string
	TextModel             string
	ImageModel            string
	RequestTimeoutSeconds int

	// Pipeline configuration
	DefaultVariations int
	FeedbackRounds    int

	// Website scraping
	WebsiteFetchTimeoutSeconds int
	WebsiteContentLimit        int

	// Output configuration
	OutputDir      string
	ImageOutputDir string

	// Retention sweep
	RetentionDays   int
	CleanupSchedule string // "daily" or "hourly"

	// Review notification configuration (optional)
	ReviewEmail  string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// Azure archive configuration (optional)
	StorageAccount   string
	StorageContainer string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		TextModel:             getEnv("TEXT_MODEL", "gpt-4-turbo-preview"),
		ImageModel:            getEnv("IMAGE_MODEL", "dall-e-3"),
		RequestTimeoutSeconds: getIntEnv("REQUEST_TIMEOUT_SECONDS", 60),

		DefaultVariations: getIntEnv("DEFAULT_VARIATIONS", 3),
		FeedbackRounds:    getIntEnv("FEEDBACK_ROUNDS", 2),

		WebsiteFetchTimeoutSeconds: getIntEnv("WEBSITE_FETCH_TIMEOUT_SECONDS", 10),
		WebsiteContentLimit:        getIntEnv("WEBSITE_CONTENT_LIMIT", 5000),

		OutputDir:      getEnv("OUTPUT_DIR", "data/generated_posts"),
		ImageOutputDir: getEnv("IMAGE_OUTPUT_DIR", "data/generated_images"),

		RetentionDays:   getIntEnv("RETENTION_DAYS", 30),
		CleanupSchedule: getEnv("CLEANUP_SCHEDULE", "daily"),

		ReviewEmail:  getEnv("REVIEW_EMAIL", ""),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getIntEnv("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "posts"),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.OpenAIAPIKey) == "" {
		return fmt.Errorf("OPENAI_API_KEY is required; set it in the environment or a .env file")
	}

	if c.DefaultVariations < 1 {
		return fmt.Errorf("DEFAULT_VARIATIONS must be at least 1")
	}

	if c.FeedbackRounds < 0 {
		return fmt.Errorf("FEEDBACK_ROUNDS must not be negative")
	}

	if c.CleanupSchedule != "daily" && c.CleanupSchedule != "hourly" {
		return fmt.Errorf("CLEANUP_SCHEDULE must be 'daily' or 'hourly'")
	}

	if c.ReviewEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when REVIEW_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
