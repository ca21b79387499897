package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/http/handlers"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/http/middleware"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	HealthHandler  *handlers.HealthHandler
	AuthHandler    *handlers.AuthHandler
	PaperHandler   *handlers.PaperHandler
	AdminHandler   *handlers.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// Papers (author)
	protected.POST("/papers", cfg.PaperHandler.SubmitAbstract)
	protected.GET("/papers", cfg.PaperHandler.ListOwn)
	protected.GET("/papers/:id", cfg.PaperHandler.Get)
	protected.GET("/papers/:id/history", cfg.PaperHandler.History)
	protected.PUT("/papers/:id/abstract", cfg.PaperHandler.ResubmitAbstract)
	protected.POST("/papers/:id/full-paper", cfg.PaperHandler.SubmitFullPaper)

	// ===============
	// || Admin     ||
	// ===============
	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	admin.GET("/papers", cfg.AdminHandler.ListPapers)
	admin.PUT("/papers/:id/status", cfg.AdminHandler.SetStatus)
	admin.POST("/papers/:id/reset-abstract", cfg.AdminHandler.ResetAbstract)
	admin.POST("/papers/:id/reset-full-paper", cfg.AdminHandler.ResetFullPaper)
	admin.POST("/papers/:id/payment", cfg.AdminHandler.RecordPayment)
	admin.GET("/papers/:id/evaluation", cfg.AdminHandler.GetEvaluation)
	admin.PUT("/papers/:id/evaluation/score", cfg.AdminHandler.SetEvaluationScore)
	admin.PUT("/papers/:id/evaluation/comments", cfg.AdminHandler.SetEvaluationComments)

	return router
}
