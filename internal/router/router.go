package router

import (
	"time"

	"procurehub/internal/config"
	"procurehub/internal/handler"
	"procurehub/internal/infra"
	"procurehub/internal/middleware"
	"procurehub/internal/repository"
	"procurehub/internal/service"
	"procurehub/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis, with the AI
// client injected into the two oracle services.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, ai *infra.OpenAIClient) *gin.Engine {
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
	requestRepo := repository.NewRequestRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	var dispatcher *worker.Dispatcher
	if cfg.NotifyTo != "" {
		dispatcher = worker.NewDispatcher(rdb)
	}

	classifier := service.NewClassifier(ai, rdb, cfg.ClassifyCacheTTL())
	extractionSvc := service.NewExtractionService(ai)
	requestSvc := service.NewRequestService(requestRepo, classifier, dispatcher, cfg.NotifyTo, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	extractH := handler.NewExtractHandler(extractionSvc)
	requestsH := handler.NewRequestsHandler(requestSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb, ai.Breaker()))
	r.GET("/commodity-groups", handler.CommodityGroups)

	r.POST("/extract", extractH.Extract)

	requests := r.Group("/requests")
	{
		requests.POST("/", requestsH.Create)
		requests.GET("/", requestsH.List)
		requests.GET("/:id", requestsH.GetByID)
		requests.GET("/:id/pdf", requestsH.DownloadPDF)
		requests.PUT("/:id/status", requestsH.UpdateStatus)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
