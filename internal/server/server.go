package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/fatihahmukti-create/Marko-AI/internal/ai"
	"github.com/fatihahmukti-create/Marko-AI/internal/auth"
	"github.com/fatihahmukti-create/Marko-AI/internal/config"
	"github.com/fatihahmukti-create/Marko-AI/internal/handlers"
	"github.com/fatihahmukti-create/Marko-AI/internal/history"
	"github.com/fatihahmukti-create/Marko-AI/internal/notifications"
	"github.com/fatihahmukti-create/Marko-AI/internal/repository"
	"github.com/fatihahmukti-create/Marko-AI/internal/workspace"
)

// New assembles the Echo server with its routes and dependencies.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) (*echo.Echo, error) {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	// A missing API key is not a startup failure: the server comes up with a
	// client whose calls fail, surfaced to users as a generation error.
	var aiClient ai.Client
	if cfg.AI.HasAPIKey() {
		geminiClient, err := ai.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		aiClient = geminiClient
	} else {
		logger.Warn("GEMINI_API_KEY is not set; plan generation will fail until it is provided")
		aiClient = ai.NewDisabledClient()
	}

	generator := ai.NewGenerator(aiClient)
	workspaces := workspace.NewManager(generator.StartChat)
	notificationHub := notifications.NewHub()

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	logRepo := repository.NewGenerationLogRepository(db)
	historyStore := history.NewStore(historyRepo, logger)

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager, cfg.Uploads.Dir, cfg.Uploads.PublicURL)
	analysisHandler := handlers.NewAnalysisHandler(generator, workspaces, historyStore, logRepo, notificationHub, cfg.AI.Model)
	historyHandler := handlers.NewHistoryHandler(historyStore, workspaces, notificationHub)
	chatHandler := handlers.NewChatHandler(workspaces)
	eventsHandler := handlers.NewEventsHandler(notificationHub)

	registerRoutes(
		e,
		authHandler,
		analysisHandler,
		historyHandler,
		chatHandler,
		eventsHandler,
		auth.JWTMiddleware(tokenManager),
		authRateLimiter(cfg.Auth),
		aiRateLimiter(cfg.AI),
	)

	e.Static(cfg.Uploads.PublicURL, cfg.Uploads.Dir)

	return e, nil
}

// NewHTTPServer creates the net/http server with the configured timeouts.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}

func aiRateLimiter(cfg config.AIConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
