package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/studyflash/internal/api"
	"github.com/vytor/studyflash/internal/config"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/llm"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/repository/sqlite"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/studygen"
	"github.com/vytor/studyflash/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func utcNow() time.Time { return time.Now().UTC() }

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the generation workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		return serve(cfg, log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides ADDR)")
}

func serve(cfg config.Config, log *logger.Logger) error {
	log.Info("===========================================")
	log.Info("StudyFlash Server Starting (%s)", version)
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("generation_worker_count=%d", cfg.GenerationWorkerCount)
	log.Debug("generation_queue_size=%d", cfg.GenerationQueueSize)
	log.Debug("llm_model=%s", cfg.LLMModel)
	log.Debug("llm_timeout=%s", cfg.LLMTimeout)
	log.Debug("llm_max_attempts=%d", cfg.LLMMaxAttempts)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	profileRepo := sqlite.NewProfileRepository(database.DB)
	noteRepo := sqlite.NewNoteRepository(database.DB)
	flashcardRepo := sqlite.NewFlashcardRepository(database.DB)
	quizRepo := sqlite.NewQuizRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)
	jobRepo := sqlite.NewJobRepository(database.DB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, queue, err := startGeneration(ctx, cfg, log, noteRepo, flashcardRepo, quizRepo, jobRepo)
	if err != nil {
		return err
	}

	srv := &api.Server{
		DB:                database,
		ProfileService:    services.NewProfileService(profileRepo),
		NoteService:       services.NewNoteService(noteRepo),
		FlashcardService:  services.NewFlashcardService(flashcardRepo, profileRepo, utcNow),
		QuizService:       services.NewQuizService(quizRepo, profileRepo, utcNow),
		GenerationService: services.NewGenerationService(noteRepo, jobRepo, queue),
		StatsService:      services.NewStatsService(statsRepo, flashcardRepo, cfg.DailyGoal, time.Now),
		GenerationLimiter: api.NewRateLimiter(cfg.GenerationRatePerMinute, cfg.GenerationBurst),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serveErr:
		log.Error("HTTP server error: %v", err)
		runErr = err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping generation pool")
	cancel()
	if pool != nil {
		pool.Stop()
	}

	log.Info("===========================================")
	log.Info("StudyFlash Server Stopped")
	log.Info("===========================================")
	return runErr
}

// startGeneration wires the model, the worker pool and the job queue. When no
// API key is configured it returns a nil queue and generation requests are
// answered with 503.
func startGeneration(
	ctx context.Context,
	cfg config.Config,
	log *logger.Logger,
	noteRepo repository.NoteRepository,
	flashcardRepo repository.FlashcardRepository,
	quizRepo repository.QuizRepository,
	jobRepo repository.JobRepository,
) (*worker.Pool, jobs.JobQueue, error) {
	provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		BaseURL: cfg.LLMBaseURL,
		Timeout: cfg.LLMTimeout,
	})
	if errors.Is(err, llm.ErrNotConfigured) {
		log.Warn("LLM_API_KEY is not set, generation is disabled")
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("configure llm provider: %w", err)
	}

	generator := studygen.New(llm.WithRetry(provider, llm.DefaultRetryConfig(cfg.LLMMaxAttempts)), studygen.DefaultConfig())
	runner := services.NewGenerationRunner(generator, noteRepo, flashcardRepo, quizRepo, services.GenerationConfig{
		FlashcardsPerNote: cfg.FlashcardsPerNote,
		QuestionsPerQuiz:  cfg.QuestionsPerQuiz,
	})

	pool := worker.NewPool(cfg.GenerationWorkerCount, cfg.GenerationQueueSize)
	pool.Start(ctx)

	// Every attempt may use the full timeout; the extra minute covers backoff.
	jobTimeout := cfg.LLMTimeout*time.Duration(cfg.LLMMaxAttempts) + time.Minute
	queue := jobs.NewWorkerQueue(pool, jobRepo, runner, jobTimeout)
	if err := queue.Recover(ctx); err != nil {
		log.Warn("failed to recover interrupted jobs: %v", err)
	}

	log.Info("generation enabled: model=%s workers=%d", generator.ModelID(), cfg.GenerationWorkerCount)
	return pool, queue, nil
}
