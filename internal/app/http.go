package app

import (
	"github.com/yungbote/experience-marketplace/internal/http"
	httpH "github.com/yungbote/experience-marketplace/internal/http/handlers"
	httpMW "github.com/yungbote/experience-marketplace/internal/http/middleware"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Marketplace *httpH.MarketplaceHandler
	Item        *httpH.ItemHandler
	Membership  *httpH.MembershipHandler
	Access      *httpH.AccessHandler
	View        *httpH.ViewHandler
}

func wireHandlers(log *logger.Logger, services Services, clients Clients, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(db),
		Marketplace: httpH.NewMarketplaceHandler(services.Marketplace),
		Item:        httpH.NewItemHandler(services.Item),
		Membership:  httpH.NewMembershipHandler(services.Membership),
		Access:      httpH.NewAccessHandler(clients.Verifier),
		View:        httpH.NewViewHandler(services.View),
	}
}

func wireMiddleware(log *logger.Logger, clients Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, clients.Verifier),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	log.Info("Wiring router...")
	return http.NewServer(http.RouterConfig{
		Log:                log,
		ServiceName:        cfg.Tracing.ServiceName,
		TracingEnabled:     cfg.Tracing.Enabled,
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		AuthMiddleware:     middleware.Auth,
		MarketplaceHandler: handlers.Marketplace,
		ItemHandler:        handlers.Item,
		MembershipHandler:  handlers.Membership,
		AccessHandler:      handlers.Access,
		ViewHandler:        handlers.View,
		HealthHandler:      handlers.Health,
	})
}
