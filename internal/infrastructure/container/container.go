package container

import (
	"fmt"

	"github.com/anupamx/matrimony-backend/internal/config"
	httpdelivery "github.com/anupamx/matrimony-backend/internal/delivery/http"
	"github.com/anupamx/matrimony-backend/internal/delivery/http/handler"
	"github.com/anupamx/matrimony-backend/internal/infrastructure/database"
	"github.com/anupamx/matrimony-backend/internal/infrastructure/gemini"
	"github.com/anupamx/matrimony-backend/internal/infrastructure/logger"
	"github.com/anupamx/matrimony-backend/internal/infrastructure/server"
	"github.com/anupamx/matrimony-backend/internal/repository"
	"github.com/anupamx/matrimony-backend/internal/repository/postgres"
	redisrepo "github.com/anupamx/matrimony-backend/internal/repository/redis"
	"github.com/anupamx/matrimony-backend/internal/usecase/match"
	"github.com/anupamx/matrimony-backend/internal/usecase/user"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *logrus.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.New(&cfg.Logging)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is optional; without it matches are computed on every request.
	var redisClient *redis.Client
	var matchCache repository.MatchCache
	if cfg.Redis.Host != "" {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, match caching disabled")
			redisClient = nil
		} else {
			matchCache = redisrepo.NewMatchCache(redisClient, cfg.Redis.MatchTTL, log)
		}
	}

	// Gemini is optional; bio suggestions fail gracefully without it.
	var geminiClient *gemini.GeminiClient
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			log.WithError(err).Warn("failed to initialize gemini client, bio suggestions disabled")
			geminiClient = nil
		}
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	// Initialize use cases
	userUseCase := user.NewUserUseCase(userRepo, matchCache, geminiClient)
	matchUseCase := match.NewMatchUseCase(userRepo, matchRepo, matchCache)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)

	// Initialize router
	router := httpdelivery.NewRouter(userHandler, matchHandler)
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.WithError(err).Error("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
