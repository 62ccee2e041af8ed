package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/studyflash/internal/logger"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	GenerationWorkerCount int
	GenerationQueueSize   int

	LLMAPIKey      string
	LLMBaseURL     string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMMaxAttempts int

	FlashcardsPerNote int
	QuestionsPerQuiz  int

	GenerationRatePerMinute float64
	GenerationBurst         int

	DailyGoal int
}

// Load reads configuration from the given .env files (or ./.env when none are
// given) and the environment, applying defaults when values are missing or invalid.
func Load(files ...string) Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load(files...)

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		DBPath:   envOr("DB_PATH", "file:studyflash.db"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		GenerationWorkerCount: envIntOr("GENERATION_WORKER_COUNT", 2),
		GenerationQueueSize:   envIntOr("GENERATION_QUEUE_SIZE", 32),

		LLMAPIKey:      envOr("LLM_API_KEY", ""),
		LLMBaseURL:     envOr("LLM_BASE_URL", ""),
		LLMModel:       envOr("LLM_MODEL", "google/gemini-2.5-flash"),
		LLMTimeout:     envDurationOr("LLM_TIMEOUT", 60*time.Second),
		LLMMaxAttempts: envIntOr("LLM_MAX_ATTEMPTS", 3),

		FlashcardsPerNote: envIntOr("FLASHCARDS_PER_NOTE", 8),
		QuestionsPerQuiz:  envIntOr("QUESTIONS_PER_QUIZ", 5),

		GenerationRatePerMinute: envFloatOr("GENERATION_RATE_PER_MINUTE", 6),
		GenerationBurst:         envIntOr("GENERATION_BURST", 3),

		DailyGoal: envIntOr("DAILY_GOAL", 3),
	}
}

// Validate reports the first setting that would keep the server from working.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("ADDR cannot be empty")
	case c.DBPath == "":
		return fmt.Errorf("DB_PATH cannot be empty")
	case !logger.ValidLevel(c.LogLevel):
		return fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel)
	case c.GenerationWorkerCount < 1 || c.GenerationWorkerCount > 32:
		return fmt.Errorf("GENERATION_WORKER_COUNT must be between 1 and 32, got %d", c.GenerationWorkerCount)
	case c.GenerationQueueSize < 1:
		return fmt.Errorf("GENERATION_QUEUE_SIZE must be at least 1, got %d", c.GenerationQueueSize)
	case c.LLMTimeout <= 0:
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLMTimeout)
	case c.LLMMaxAttempts < 1:
		return fmt.Errorf("LLM_MAX_ATTEMPTS must be at least 1, got %d", c.LLMMaxAttempts)
	case c.FlashcardsPerNote < 1 || c.FlashcardsPerNote > 50:
		return fmt.Errorf("FLASHCARDS_PER_NOTE must be between 1 and 50, got %d", c.FlashcardsPerNote)
	case c.QuestionsPerQuiz < 1 || c.QuestionsPerQuiz > 20:
		return fmt.Errorf("QUESTIONS_PER_QUIZ must be between 1 and 20, got %d", c.QuestionsPerQuiz)
	case c.GenerationRatePerMinute <= 0:
		return fmt.Errorf("GENERATION_RATE_PER_MINUTE must be positive, got %v", c.GenerationRatePerMinute)
	case c.GenerationBurst < 1:
		return fmt.Errorf("GENERATION_BURST must be at least 1, got %d", c.GenerationBurst)
	case c.DailyGoal < 1:
		return fmt.Errorf("DAILY_GOAL must be at least 1, got %d", c.DailyGoal)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
