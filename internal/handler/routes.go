package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "NudgePrototype/internal/docs"
	"NudgePrototype/internal/logging"
	"NudgePrototype/internal/middleware"
	"NudgePrototype/internal/observability"
)

type RouterOptions struct {
	Logger   *zap.Logger
	Metrics  *observability.Collector
	AdminKey string

	NudgesPerSecond float64
	NudgeBurst      int
	LimiterTTL      time.Duration
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.NudgesPerSecond <= 0 {
		opts.NudgesPerSecond = 5
	}
	if opts.NudgeBurst <= 0 {
		opts.NudgeBurst = 10
	}
	if opts.LimiterTTL <= 0 {
		opts.LimiterTTL = time.Hour
	}

	h.nudges = middleware.NewNudgeLimits(opts.NudgesPerSecond, opts.NudgeBurst, opts.LimiterTTL)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.GinLogger(opts.Logger))
	router.Use(opts.Metrics.GinMiddleware())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", middleware.AdminKeyHeader)
	router.Use(cors.New(config))

	router.POST("/session", h.CreateSession)
	router.GET("/themes", h.GetThemes)
	router.GET("/themes/:key", h.GetTheme)
	router.GET("/healthz", h.Healthz)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 토큰은 쿼리 파라미터로 검증
	router.GET("/ws/session", h.HandleSessionStream)

	admin := router.Group("/", middleware.AdminKey(opts.AdminKey))
	{
		admin.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
		admin.GET("/admin/sessions", h.ListSessions)
	}

	protected := router.Group("/api", middleware.SessionAuth(h.signer))
	{
		protected.GET("/state", h.GetState)
		protected.POST("/start", h.Start)
		protected.GET("/roster", h.GetRoster)
		protected.POST("/users/:id/select", h.SelectUser)
		protected.POST("/users/:id/nudge", h.nudges.Middleware(), h.NudgeUser)
		protected.POST("/users/:id/chat", h.OpenChat)
		protected.POST("/popover/close", h.ClosePopover)
		protected.POST("/profile", h.ViewProfile)
		protected.POST("/back", h.Back)
		protected.GET("/chat", h.GetChat)
		protected.POST("/chat/messages", h.SendMessage)
		protected.POST("/backdrop", h.Backdrop)
		protected.GET("/history", h.GetHistory)
		protected.DELETE("/session", h.DeleteSession)
	}

	return router
}
