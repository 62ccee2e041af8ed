package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                    ":8080",
		DBPath:                  "test.db",
		LogLevel:                "INFO",
		GenerationWorkerCount:   2,
		GenerationQueueSize:     32,
		LLMModel:                "test-model",
		LLMTimeout:              time.Minute,
		LLMMaxAttempts:          3,
		FlashcardsPerNote:       8,
		QuestionsPerQuiz:        5,
		GenerationRatePerMinute: 6,
		GenerationBurst:         3,
		DailyGoal:               3,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }, "ADDR cannot be empty"},
		{"empty db path", func(c *config.Config) { c.DBPath = "" }, "DB_PATH cannot be empty"},
		{"bad log level", func(c *config.Config) { c.LogLevel = "LOUD" }, "LOG_LEVEL"},
		{"no workers", func(c *config.Config) { c.GenerationWorkerCount = 0 }, "GENERATION_WORKER_COUNT"},
		{"too many workers", func(c *config.Config) { c.GenerationWorkerCount = 33 }, "GENERATION_WORKER_COUNT"},
		{"no queue", func(c *config.Config) { c.GenerationQueueSize = 0 }, "GENERATION_QUEUE_SIZE"},
		{"zero timeout", func(c *config.Config) { c.LLMTimeout = 0 }, "LLM_TIMEOUT"},
		{"no attempts", func(c *config.Config) { c.LLMMaxAttempts = 0 }, "LLM_MAX_ATTEMPTS"},
		{"too many flashcards", func(c *config.Config) { c.FlashcardsPerNote = 51 }, "FLASHCARDS_PER_NOTE"},
		{"no questions", func(c *config.Config) { c.QuestionsPerQuiz = 0 }, "QUESTIONS_PER_QUIZ"},
		{"zero rate", func(c *config.Config) { c.GenerationRatePerMinute = 0 }, "GENERATION_RATE_PER_MINUTE"},
		{"zero burst", func(c *config.Config) { c.GenerationBurst = 0 }, "GENERATION_BURST"},
		{"zero goal", func(c *config.Config) { c.DailyGoal = 0 }, "DAILY_GOAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "FLASHCARDS_PER_NOTE", "LLM_TIMEOUT", "GENERATION_RATE_PER_MINUTE"} {
		t.Setenv(key, "")
	}

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:studyflash.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 8, cfg.FlashcardsPerNote)
	assert.Equal(t, 5, cfg.QuestionsPerQuiz)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 6.0, cfg.GenerationRatePerMinute)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("FLASHCARDS_PER_NOTE", "12")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("GENERATION_RATE_PER_MINUTE", "1.5")
	t.Setenv("QUESTIONS_PER_QUIZ", "not-a-number")

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 12, cfg.FlashcardsPerNote)
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 1.5, cfg.GenerationRatePerMinute)
	assert.Equal(t, 5, cfg.QuestionsPerQuiz, "invalid values fall back to defaults")
}

func TestLoad_FromEnvFile(t *testing.T) {
	// godotenv never overrides variables that are already set, even to "".
	for _, key := range []string{"DB_PATH", "LLM_MODEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_PATH=file:fromfile.db\nLLM_MODEL=gpt-4o-mini\n"), 0o600))

	cfg := config.Load(path)

	assert.Equal(t, "file:fromfile.db", cfg.DBPath)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
}
