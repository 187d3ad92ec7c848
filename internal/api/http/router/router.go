package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/memolish/memolish-server/internal/api/http/handler"
	"github.com/memolish/memolish-server/internal/api/http/middleware"
	"github.com/memolish/memolish-server/internal/logger"
)

// Router wires handlers and middleware into an echo instance.
type Router struct {
	memoService  handler.MemoService
	aiService    handler.AIService
	audioService handler.AudioService
	corsOrigins  []string
	dailyCredits int
	logger       *logger.Logger
}

// New creates a new Router instance.
func New(
	memoService handler.MemoService,
	aiService handler.AIService,
	audioService handler.AudioService,
	corsOrigins []string,
	dailyCredits int,
	logger *logger.Logger,
) *Router {
	return &Router{
		memoService:  memoService,
		aiService:    aiService,
		audioService: audioService,
		corsOrigins:  corsOrigins,
		dailyCredits: dailyCredits,
		logger:       logger,
	}
}

// Register configures all routes and middleware and returns the echo
// instance ready to serve.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logging := middleware.NewLogging(r.logger)
	e.Use(logging.Handle)
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     r.corsOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderContentType, middleware.SessionHeader},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "memolish-api"})
	})

	api := e.Group("/api", middleware.Session())

	memoHandler := handler.NewMemo(r.memoService, r.logger)
	memos := api.Group("/memos")
	memos.POST("", memoHandler.Create)
	memos.GET("", memoHandler.List)
	memos.GET("/:id", memoHandler.Get)
	memos.PUT("/:id", memoHandler.Update)
	memos.DELETE("/:id", memoHandler.Delete)
	memos.PATCH("/:id/status", memoHandler.UpdateStatus)
	memos.POST("/:id/parse-url", memoHandler.ParseLink)

	aiHandler := handler.NewAI(r.aiService, r.dailyCredits, r.logger)
	ai := api.Group("/ai")
	ai.POST("/transform/:id", aiHandler.Transform)
	ai.GET("/credits", aiHandler.Credits)

	audioHandler := handler.NewAudio(r.audioService, r.logger)
	audio := api.Group("/audio")
	audio.POST("/generate/:id", audioHandler.Generate)
	audio.GET("/download/:id", audioHandler.Download)

	return e
}
