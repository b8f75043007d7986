package server

import (
	"github.com/labstack/echo/v4"

	"github.com/fatihahmukti-create/Marko-AI/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	analysisHandler *handlers.AnalysisHandler,
	historyHandler *handlers.HistoryHandler,
	chatHandler *handlers.ChatHandler,
	eventsHandler *handlers.EventsHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)
	authGroup.POST("/me/photo", authHandler.UploadPhoto, authMiddleware)

	analysis := api.Group("/analysis", authMiddleware)
	analysis.POST("/generate", analysisHandler.Generate, aiRateLimiter)
	analysis.GET("/status", analysisHandler.Status)
	analysis.POST("/reset", analysisHandler.Reset)

	historyGroup := api.Group("/history", authMiddleware)
	historyGroup.GET("", historyHandler.List)
	historyGroup.POST("/:id/select", historyHandler.Select)
	historyGroup.GET("/:id/export/json", historyHandler.ExportJSON)
	historyGroup.DELETE("/:id", historyHandler.Delete)

	chatGroup := api.Group("/chat", authMiddleware)
	chatGroup.POST("/open", chatHandler.Open)
	chatGroup.POST("/close", chatHandler.Close)
	chatGroup.GET("/messages", chatHandler.Messages)
	chatGroup.POST("/send", chatHandler.Send, aiRateLimiter)

	eventsGroup := api.Group("/events", authMiddleware)
	eventsGroup.GET("/stream", eventsHandler.Stream)
}
