// Package v1 provides HTTP API version 1.
package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"ricemill/internal/core/idempotency"
	"ricemill/internal/domain"
	"ricemill/internal/domain/audit"
	"ricemill/internal/infrastructure/http/v1/handlers"
	"ricemill/internal/infrastructure/http/v1/middleware"
	"ricemill/internal/metadata"
	"ricemill/pkg/logger"
)

// RouterConfig holds everything the router wires into handlers.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Release switches gin to release mode.
	Release bool

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	AuthService   handlers.AuthService
	MillService   handlers.MillService
	Mills         middleware.MillGetter
	StockService  handlers.StockService
	ReportService handlers.ReportService
	Audit         audit.Logger

	// MillAccess re-checks stored mill assignments; nil trusts the token.
	MillAccess middleware.MillAccessChecker

	// Modules are the entry handlers mounted under /mills/:millId/<resource>.
	Modules []EntryRouteHandler

	// MetadataRegistry describes the modules to clients.
	MetadataRegistry *metadata.Registry

	// Idempotency is nil to disable replay protection.
	Idempotency idempotency.Store

	// RateLimit in ulule format, e.g. "300-M". Empty disables limiting.
	RateLimit string
	// RateLimitStore shares counters between instances; nil keeps them in memory.
	RateLimitStore limiter.Store
	CORSOrigins    []string

	// HealthChecks run on /health/ready.
	HealthChecks map[string]handlers.Check
	HealthInfo   func() any
	Version      string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	healthHandler := handlers.NewHealthHandler(cfg.Version, cfg.HealthChecks, cfg.HealthInfo)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api")
	if cfg.RateLimit != "" {
		limit, err := middleware.RateLimit(cfg.RateLimit, cfg.RateLimitStore)
		if err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		api.Use(limit)
	}

	base := handlers.NewBaseHandler()
	registerAuthRoutes(api, base, cfg)

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.JWTValidator)) // 1. Validate JWT
	protected.Use(middleware.UserContext())          // 2. Access scope for the domain layer
	if cfg.Idempotency != nil {
		protected.Use(middleware.Idempotency(cfg.Idempotency))
	}

	registerUserRoutes(protected, base, cfg)
	registerMetaRoutes(protected, base, cfg)
	registerMillRoutes(protected, base, cfg)

	millScoped := protected.Group("/mills/:"+middleware.ParamMillID, middleware.MillScope(cfg.Mills, cfg.MillAccess))
	for _, h := range cfg.Modules {
		RegisterEntryRoutes(millScoped.Group("/"+h.Resource()), h)
	}
	registerStockRoutes(millScoped, base, cfg)
	registerReportRoutes(millScoped, base, cfg)
	registerAuditRoutes(millScoped, base, cfg)

	return router, nil
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	public := rg.Group("/auth")
	public.POST("/login", authHandler.Login)
	public.POST("/refresh", authHandler.Refresh)

	protected := rg.Group("/auth", middleware.Auth(cfg.JWTValidator))
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)
}

func registerUserRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewUsersHandler(base, cfg.AuthService)

	users := rg.Group("/users", middleware.RequireAdmin())
	users.GET("", h.List)
	users.POST("", h.Create)
	users.PUT("/:userId/mills", h.AssignMills)
	users.PATCH("/:userId/status", h.SetActive)
}

func registerMetaRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.MetadataRegistry == nil {
		return
	}
	h := handlers.NewMetadataHandler(base, cfg.MetadataRegistry)

	meta := rg.Group("/meta")
	meta.GET("/modules", h.ListModules)
	meta.GET("/modules/:resource", h.GetModule)
}

// registerMillRoutes mounts the registry. Admin writes skip MillScope so a
// suspended mill can still be edited and reactivated.
func registerMillRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewMillsHandler(base, cfg.MillService)
	param := "/:" + middleware.ParamMillID

	mills := rg.Group("/mills")
	mills.GET("", h.List)
	mills.POST("", middleware.RequireAdmin(), h.Create)
	mills.GET(param, middleware.MillScope(cfg.Mills, cfg.MillAccess), h.Get)
	mills.PUT(param, middleware.RequireAdmin(), h.Update)
	mills.PATCH(param+"/status", middleware.RequireAdmin(), h.SetStatus)
}

func registerStockRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewStockHandler(base, cfg.StockService)

	g := rg.Group("/stock-transactions")
	g.GET("", h.List)
	g.GET("/balance", h.Balance)
	g.POST("", h.Create)
	g.DELETE("/:id", h.Delete)
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewReportsHandler(base, cfg.ReportService)

	g := rg.Group("/reports")
	g.GET("/stock-balance", h.GetStockBalance)
	g.GET("/stock-turnover", h.GetStockTurnover)
}

func registerAuditRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Audit == nil {
		return
	}
	h := handlers.NewAuditHandler(base, cfg.Audit)
	rg.GET("/audit", middleware.RequireAdmin(), h.History)
}

// DescribeModules builds the metadata registry from the entry descriptors.
// samples maps a resource to a zero entry value.
func DescribeModules(descs []*domain.Descriptor, samples map[string]any) *metadata.Registry {
	reg := metadata.NewRegistry()
	for _, d := range descs {
		reg.Register(metadata.Describe(d, samples[d.Resource]))
	}
	return reg
}
