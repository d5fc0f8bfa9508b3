package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ainavigator/navigator-server/internal/chat"
	"github.com/ainavigator/navigator-server/internal/config"
	"github.com/ainavigator/navigator-server/internal/httpapi"
	"github.com/ainavigator/navigator-server/internal/repository"
	"github.com/ainavigator/navigator-server/internal/service"
	"github.com/ainavigator/navigator-server/pkg/cache"
	dbbuilder "github.com/ainavigator/navigator-server/pkg/database"
	"github.com/ainavigator/navigator-server/pkg/httpserver"
)

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	httpServer *httpserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	if err := repository.EnsureSchema(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("schema init failed: %w", err)
	}

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
		cache.WithKeyPrefix("navigator"),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	respondentRepo := repository.NewRespondentRepository(dbPool)
	companyRepo := repository.NewCompanyRepository(dbPool)
	interventionRepo := repository.NewInterventionRepository(dbPool)

	insights := service.NewInsightService(respondentRepo, companyRepo, interventionRepo, logger)

	var assistant httpapi.Assistant
	if cfg.OpenAIKey != "" {
		assistant = chat.NewOpenAIService(cfg.OpenAIKey, cfg.OpenAIModel, logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set, chat endpoint disabled")
	}

	handlers := httpapi.NewHandlers(insights, assistant, cacheClient, logger, cfg.CacheTTL)

	httpServer, err := httpserver.New(
		httpserver.WithPort(cfg.HTTPPort),
		httpserver.WithLogger(logger),
		httpserver.WithLogging(true),
		httpserver.WithHandler(handlers.Router()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http server: %w", err)
	}

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		httpServer: httpServer,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.httpServer.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed")

	_ = a.logger.Sync()
	return nil
}
