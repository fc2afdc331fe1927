package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so tests see only what they set
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DEBUG",
		"OPENAI_API_KEY", "TEXT_MODEL", "IMAGE_MODEL", "REQUEST_TIMEOUT_SECONDS",
		"DEFAULT_VARIATIONS", "FEEDBACK_ROUNDS",
		"WEBSITE_FETCH_TIMEOUT_SECONDS", "WEBSITE_CONTENT_LIMIT",
		"OUTPUT_DIR", "IMAGE_OUTPUT_DIR",
		"RETENTION_DAYS", "CLEANUP_SCHEDULE",
		"REVIEW_EMAIL", "SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD",
		"AZURE_STORAGE_ACCOUNT", "AZURE_STORAGE_CONTAINER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "gpt-4-turbo-preview", cfg.TextModel)
	assert.Equal(t, "dall-e-3", cfg.ImageModel)
	assert.Equal(t, 60, cfg.RequestTimeoutSeconds)
	assert.Equal(t, 3, cfg.DefaultVariations)
	assert.Equal(t, 2, cfg.FeedbackRounds)
	assert.Equal(t, 10, cfg.WebsiteFetchTimeoutSeconds)
	assert.Equal(t, 5000, cfg.WebsiteContentLimit)
	assert.Equal(t, "data/generated_posts", cfg.OutputDir)
	assert.Equal(t, "data/generated_images", cfg.ImageOutputDir)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, "daily", cfg.CleanupSchedule)
	assert.Equal(t, "posts", cfg.StorageContainer)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TEXT_MODEL", "gpt-4o")
	t.Setenv("DEFAULT_VARIATIONS", "5")
	t.Setenv("FEEDBACK_ROUNDS", "0")
	t.Setenv("CLEANUP_SCHEDULE", "hourly")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.TextModel)
	assert.Equal(t, 5, cfg.DefaultVariations)
	assert.Equal(t, 0, cfg.FeedbackRounds)
	assert.Equal(t, "hourly", cfg.CleanupSchedule)
	assert.True(t, cfg.Debug)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "Invalid cleanup schedule",
			env:     map[string]string{"CLEANUP_SCHEDULE": "weekly"},
			wantErr: "CLEANUP_SCHEDULE",
		},
		{
			name:    "Zero variations",
			env:     map[string]string{"DEFAULT_VARIATIONS": "0"},
			wantErr: "DEFAULT_VARIATIONS",
		},
		{
			name:    "Negative feedback rounds",
			env:     map[string]string{"FEEDBACK_ROUNDS": "-1"},
			wantErr: "FEEDBACK_ROUNDS",
		},
		{
			name:    "Review email without SMTP",
			env:     map[string]string{"REVIEW_EMAIL": "reviewer@example.com"},
			wantErr: "SMTP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("OPENAI_API_KEY", "sk-test")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ReviewEmailWithSMTP(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REVIEW_EMAIL", "reviewer@example.com")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "bot@example.com")
	t.Setenv("SMTP_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "reviewer@example.com", cfg.ReviewEmail)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestGetIntEnv_InvalidFallsBack(t *testing.T) {
	t.Setenv("RETENTION_DAYS", "not-a-number")
	assert.Equal(t, 30, getIntEnv("RETENTION_DAYS", 30))

	t.Setenv("RETENTION_DAYS", "7")
	assert.Equal(t, 7, getIntEnv("RETENTION_DAYS", 30))
}

func TestGetBoolEnv_InvalidFallsBack(t *testing.T) {
	t.Setenv("DEBUG", "maybe")
	assert.False(t, getBoolEnv("DEBUG", false))

	t.Setenv("DEBUG", "1")
	assert.True(t, getBoolEnv("DEBUG", false))
}
