package router

import (
	"time"

	"rofoportal/internal/config"
	"rofoportal/internal/handler"
	"rofoportal/internal/middleware"
	"rofoportal/internal/model"
	"rofoportal/internal/repository"
	"rofoportal/internal/service"
	"rofoportal/internal/store"
	"rofoportal/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Store/Redis
func New(cfg *config.Config, tab store.Tabular, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(tab)
	forecastRepo := repository.NewForecastRepository(tab)
	submissionRepo := repository.NewSubmissionRepository(tab)

	// ── Services ─────────────────────────────────────────────────────────────
	sessions := service.NewSessionStore(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)
	authSvc := service.NewAuthService(userRepo, sessions, cfg)
	resolverSvc := service.NewResolverService(forecastRepo)
	submitSvc := service.NewSubmitService(submissionRepo, dispatcher)
	forecastSvc := service.NewForecastService(resolverSvc, submitSvc, sessions)
	adminSvc := service.NewAdminService(forecastRepo, submissionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	forecastH := handler.NewForecastHandler(forecastSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(tab, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, sessions)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)

		editable := middleware.RequireRole(model.RoleChannel, model.RoleBrand1, model.RoleBrand2)
		forecast := v1.Group("/forecast", editable)
		{
			forecast.GET("", forecastH.Load)
			forecast.PUT("/draft", forecastH.SaveDraft)
			forecast.GET("/draft", forecastH.GetDraft)
			forecast.POST("/submit", forecastH.Submit)
		}

		admin := v1.Group("/admin", middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/summary", adminH.Summary)
			admin.GET("/summary/export", adminH.Export)
			admin.GET("/log", adminH.Log)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
