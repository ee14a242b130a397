// @title         matcher-service API
// @version       1.0
// @description   Сервис асинхронного матчинга резюме против корпуса вакансий: взвешенный мультифакторный скоринг, ранжирование и объяснения сильных матчей через LLM.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "github.com/artem13815/matcher/docs"

	// internal imports
	httpapi "github.com/artem13815/matcher/api/http"
	"github.com/artem13815/matcher/api/http/handlers"
	"github.com/artem13815/matcher/pkg/config"
	"github.com/artem13815/matcher/pkg/health"
	healthcheckers "github.com/artem13815/matcher/pkg/health/checkers"
	"github.com/artem13815/matcher/pkg/job"
	"github.com/artem13815/matcher/pkg/llm/openrouter"
	"github.com/artem13815/matcher/pkg/logger"
	"github.com/artem13815/matcher/pkg/matching"
	pgrepo "github.com/artem13815/matcher/pkg/repository/postgres"
	"github.com/artem13815/matcher/pkg/resume"
	"github.com/artem13815/matcher/pkg/storage/postgres"
	"github.com/artem13815/matcher/pkg/task"
)

func main() {
	// Load configuration from env/.env
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Job corpus: Postgres when DATABASE_URL задан, иначе JSON-файл.
	var corpus job.Repository
	var readiness health.ReadinessUseCase
	switch {
	case cfg.DatabaseURL != "":
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			zlog.Fatal("postgres connect", zap.Error(err))
		}
		defer pool.Close()
		jobRepo, err := pgrepo.NewJobRepository(pool)
		if err != nil {
			zlog.Fatal("init job repo", zap.Error(err))
		}
		corpus = jobRepo
		readiness = health.NewService(
			healthcheckers.NewPostgresChecker(pool),
			healthcheckers.NewCorpusChecker(jobRepo),
		)
	case cfg.JobsFile != "":
		static, err := job.LoadFile(cfg.JobsFile)
		if err != nil {
			zlog.Fatal("load jobs file", zap.Error(err))
		}
		corpus = static
		readiness = health.NewService(healthcheckers.NewCorpusChecker(static))
		zlog.Info("job corpus loaded from file", zap.String("path", cfg.JobsFile))
	default:
		zlog.Fatal("no job corpus configured: set DATABASE_URL or JOBS_FILE")
	}

	// Explanation generator: без ключа работаем, просто без объяснений.
	var explainer matching.Explainer
	if cfg.OpenRouterAPIKey != "" {
		explainer = matching.NewChatExplainer(openrouter.New(openrouter.Options{
			APIKey:   cfg.OpenRouterAPIKey,
			BaseURL:  cfg.OpenRouterBase,
			Model:    cfg.OpenRouterModel,
			AppTitle: cfg.OpenRouterAppTitle,
			Referer:  cfg.OpenRouterReferer,
		}))
	} else {
		zlog.Warn("OPENROUTER_API_KEY is empty, match explanations disabled")
	}

	// Wire dependencies (Clean Architecture)
	engine := matching.NewEngine(matching.NewLexicalSimilarity(), zlog)
	store := task.NewStore(cfg.TaskRetention, zlog)
	orchestrator := task.NewService(store, corpus, resume.NewNormalizer(), engine, explainer, task.Config{
		Workers:   cfg.Workers,
		QueueSize: cfg.QueueSize,
	}, zlog)

	go func() {
		if err := orchestrator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zlog.Error("orchestrator stopped", zap.Error(err))
		}
	}()

	app := fiber.New(fiber.Config{BodyLimit: 20 << 20})

	matchHandler := handlers.NewMatchHandler(orchestrator)
	taskHandler := handlers.NewTaskHandler(orchestrator)
	jobsHandler := handlers.NewJobsHandler(corpus)
	healthHandler := handlers.NewHealthHandler(readiness)

	// Register routes
	httpapi.Register(app, matchHandler, taskHandler, jobsHandler, healthHandler)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	zlog.Info("HTTP server listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
