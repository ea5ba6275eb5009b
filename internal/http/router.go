package http

import (
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/yungbote/experience-marketplace/internal/http/docs"
	httpH "github.com/yungbote/experience-marketplace/internal/http/handlers"
	httpMW "github.com/yungbote/experience-marketplace/internal/http/middleware"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	TracingEnabled bool
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	MarketplaceHandler *httpH.MarketplaceHandler
	ItemHandler        *httpH.ItemHandler
	MembershipHandler  *httpH.MembershipHandler
	AccessHandler      *httpH.AccessHandler
	ViewHandler        *httpH.ViewHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		name := cfg.ServiceName
		if name == "" {
			name = "experience-marketplace"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	// Docs
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	requireIdentity := func(c *gin.Context) { c.Next() }
	attachIdentity := func(c *gin.Context) { c.Next() }
	if cfg.AuthMiddleware != nil {
		requireIdentity = cfg.AuthMiddleware.RequireIdentity()
		attachIdentity = cfg.AuthMiddleware.AttachIdentity()
	}

	api := r.Group("/api")
	{
		// Experience scope (public)
		if cfg.MarketplaceHandler != nil {
			api.GET("/experiences/:experienceId/marketplaces", cfg.MarketplaceHandler.List)
			api.POST("/experiences/:experienceId/marketplaces", cfg.MarketplaceHandler.Create)
			api.GET("/experiences/:experienceId/marketplaces/:marketplaceId", cfg.MarketplaceHandler.Get)
		}
		if cfg.MembershipHandler != nil {
			api.GET("/experiences/:experienceId/memberships", cfg.MembershipHandler.List)
		}
		if cfg.AccessHandler != nil {
			api.GET("/experiences/:experienceId/access", requireIdentity, cfg.AccessHandler.Check)
		}

		// Marketplace admin
		if cfg.MarketplaceHandler != nil {
			api.PATCH("/marketplaces/:marketplaceId/edit", requireIdentity, cfg.MarketplaceHandler.Edit)
			api.PATCH("/marketplaces/:marketplaceId/status", requireIdentity, cfg.MarketplaceHandler.SetStatus)
			api.DELETE("/marketplaces/:marketplaceId", requireIdentity, cfg.MarketplaceHandler.Archive)
		}

		// Items
		if cfg.ItemHandler != nil {
			api.GET("/marketplaces/:marketplaceId/items", cfg.ItemHandler.List)
			api.POST("/marketplaces/:marketplaceId/items", cfg.ItemHandler.Create)
			api.GET("/marketplaces/:marketplaceId/items/:itemId", cfg.ItemHandler.Get)
			api.DELETE("/marketplaces/:marketplaceId/items/:itemId", cfg.ItemHandler.Delete)
			api.POST("/marketplaces/:marketplaceId/items/:itemId/images", cfg.ItemHandler.UploadImage)
		}

		// Views
		if cfg.ViewHandler != nil {
			views := api.Group("/views", attachIdentity)
			views.GET("/experiences/:experienceId", cfg.ViewHandler.ExperienceHome)
			views.GET("/experiences/:experienceId/marketplaces/:marketplaceId", cfg.ViewHandler.MarketplacePage)
			views.GET("/experiences/:experienceId/marketplaces/:marketplaceId/items/:itemId", cfg.ViewHandler.ItemDetail)
		}
	}

	return r
}
