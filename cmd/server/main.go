package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexprep/interview/internal/config"
	"nexprep/interview/internal/handlers"
	"nexprep/interview/internal/history"
	"nexprep/interview/internal/interview"
	"nexprep/interview/internal/jobs"
	"nexprep/interview/internal/llm"
	_ "nexprep/interview/internal/llm/gemini"
	_ "nexprep/interview/internal/llm/groq"
	"nexprep/interview/internal/prompts"
	"nexprep/interview/internal/questionbank"
	"nexprep/interview/internal/routers"
	"nexprep/interview/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, interviewHandler)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase opens the history database. Sqlite is the default for local
// runs; postgres is used in deployments.
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		host := getEnv("POSTGRES_HOST", "localhost")
		user := getEnv("POSTGRES_USER", "postgres")
		password := getEnv("POSTGRES_PASSWORD", "postgres")
		dbname := getEnv("POSTGRES_DB", "postgres")
		port := getEnv("POSTGRES_PORT", "5432")
		sslmode := getEnv("POSTGRES_SSLMODE", "disable")

		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			host, user, password, dbname, port, sslmode)

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	default:
		db, err := gorm.Open(sqlite.Open(cfg.DBDsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil
	}
}

func main() {
	// optional local env file; deployments set real env vars
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("realtime_provider", cfg.RealtimeProvider),
		zap.String("batch_provider", cfg.BatchProvider),
		zap.Duration("report_timeout", cfg.ReportTimeout))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// static question bank for the generic track
	bank, err := questionbank.Load()
	if err != nil {
		logger.Fatal("Failed to load question bank", zap.Error(err))
	}

	// AI providers based on configuration. Realtime drives the per-turn
	// calls, batch drives the end-of-session report; they may be the same
	// provider.
	realtimeProvider, err := llm.NewProvider(cfg.RealtimeProvider)
	if err != nil {
		logger.Fatal("Failed to initialize realtime AI provider", zap.Error(err))
	}
	batchProvider := realtimeProvider
	if cfg.BatchProvider != cfg.RealtimeProvider {
		batchProvider, err = llm.NewProvider(cfg.BatchProvider)
		if err != nil {
			logger.Fatal("Failed to initialize batch AI provider", zap.Error(err))
		}
	}

	sessions := session.NewStore()
	sequencer := interview.NewSequencer(realtimeProvider, promptManager, logger)
	evaluator := interview.NewEvaluator(realtimeProvider, promptManager, logger)
	hints := interview.NewHintGenerator(realtimeProvider, promptManager, logger)
	reports := interview.NewReportGenerator(batchProvider, promptManager, cfg.ReportTimeout, logger)

	// Initialize history storage. Failure disables history and the
	// leaderboard, never the interview flow itself.
	var historyStore *history.Store
	var exporterJob *jobs.ReportExporterJob

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database, history will be disabled", zap.Error(err))
	} else {
		historyStore, err = history.NewStore(db)
		if err != nil {
			logger.Error("Failed to initialize history store, history will be disabled", zap.Error(err))
			historyStore = nil
		}
	}

	if historyStore != nil {
		exporterConfig := &jobs.ExporterConfig{
			Schedule:      cfg.ExportSchedule,
			ExportDir:     cfg.ExportDir,
			ExportEnabled: cfg.ExportEnabled,
		}
		exporterJob = jobs.NewReportExporterJob(historyStore, exporterConfig)
		if exporterConfig.ExportEnabled {
			if err := exporterJob.Start(); err != nil {
				logger.Error("Failed to start report exporter job", zap.Error(err))
			} else {
				logger.Info("Report exporter job started", zap.String("schedule", exporterConfig.Schedule))
			}
		}
		logger.Info("History store initialized successfully")
	}

	interviewHandler := handlers.NewInterviewHandler(sessions, bank, sequencer, evaluator, hints, reports, historyStore, logger)
	healthHandler := handlers.NewHealthHandler(realtimeProvider, batchProvider, promptManager, bank, cfg)

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "https://app.nexprep.dev"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))

	registerRoutes(router, interviewHandler, healthHandler)

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	if exporterJob != nil {
		exporterJob.Stop()
		logger.Info("Report exporter job stopped")
	}

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
