package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-board-api/internal/config"
	"github.com/yukikurage/project-board-api/internal/constants"
	"github.com/yukikurage/project-board-api/internal/database"
	"github.com/yukikurage/project-board-api/internal/handlers"
	"github.com/yukikurage/project-board-api/internal/middleware"
	"github.com/yukikurage/project-board-api/internal/oauth"
	"github.com/yukikurage/project-board-api/internal/repository"
	"github.com/yukikurage/project-board-api/internal/services"
	"github.com/yukikurage/project-board-api/internal/session"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("Failed to create session store", zap.Error(err))
	}

	loginLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Fatal("Failed to create login rate limiter", zap.Error(err))
	}

	var provider oauth.Provider
	if cfg.GoogleConfigured() {
		provider = oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
		})
	}

	// Initialize AI service
	var drafter services.TaskDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey)
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	router, err := handlers.NewRouter(handlers.RouterConfig{
		Logger:         logger,
		SessionStore:   store,
		Serializer:     session.NewSerializer(userRepo),
		FrontendURL:    cfg.FrontendURL,
		Provider:       provider,
		LoginLimiter:   loginLimiter,
		TrustedProxies: cfg.TrustedProxies,
	}, handlers.Services{
		Auth:     services.NewAuthService(userRepo),
		Identity: services.NewIdentityService(userRepo),
		Projects: services.NewProjectService(projectRepo, taskRepo, userRepo),
		Tasks:    services.NewTaskService(taskRepo, projectRepo, userRepo, drafter),
		Users:    services.NewUserService(userRepo),
	})
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewExample()
	}
	return logger
}

// newSessionStore uses Redis when REDIS_ADDR is set and signed cookies otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.RedisAddr != "" {
		s, err := redisStore.NewStore(
			10,            // Redis pool size
			"tcp",         // network type
			cfg.RedisAddr, // Redis address from config
			"",            // username (empty for default user)
			"",            // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = s
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
