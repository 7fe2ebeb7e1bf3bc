package controller

import (
	"github.com/Freeeeeet/slotswapper/internal/controller/handlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Logger             *zap.Logger
	TokenParser        TokenParser
	AuthHandler        *handlers.AuthHandler
	SlotHandler        *handlers.SlotHandler
	MarketplaceHandler *handlers.MarketplaceHandler
	SwapHandler        *handlers.SwapHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLog(cfg.Logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.POST("/signup", cfg.AuthHandler.Signup)
	api.POST("/login", cfg.AuthHandler.Login)

	protected := api.Group("")
	protected.Use(RequireAuth(cfg.TokenParser))
	protected.Use(RateLimit(10, 30))

	protected.GET("/events", cfg.SlotHandler.ListMine)
	protected.POST("/events", cfg.SlotHandler.Create)
	protected.PUT("/events/:id", cfg.SlotHandler.Update)
	protected.DELETE("/events/:id", cfg.SlotHandler.Delete)

	protected.GET("/swappable-slots", cfg.MarketplaceHandler.List)

	protected.POST("/swap-request", cfg.SwapHandler.Propose)
	protected.POST("/swap-response/:requestId", cfg.SwapHandler.Respond)
	protected.GET("/requests", cfg.SwapHandler.ListMine)

	return router
}
