package app

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/experience-marketplace/internal/data/db"
	"github.com/yungbote/experience-marketplace/internal/http"
	"github.com/yungbote/experience-marketplace/internal/observability"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients

	dbService       *db.DatabaseService
	shutdownTracing func(context.Context) error
}

func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return NewWithLogger(ctx, cfg, log)
}

// NewWithLogger wires the application around an existing logger.
func NewWithLogger(ctx context.Context, cfg Config, log *logger.Logger) (*App, error) {
	shutdownTracing, err := observability.InitTracing(ctx, log, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Env,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		Headers:     observability.ParseHeaders(cfg.Tracing.Headers),
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	dbService, err := db.NewDatabaseService(cfg.dbConfig(), log)
	if err != nil {
		_ = shutdownTracing(ctx)
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		_ = shutdownTracing(ctx)
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := dbService.DB()

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = dbService.Close()
		_ = shutdownTracing(ctx)
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, reposet, clients, nil)
	handlerset := wireHandlers(log, serviceset, clients, dbService)
	middleware := wireMiddleware(log, clients)
	server := wireServer(log, cfg, handlerset, middleware)

	return &App{
		Log:             log,
		DB:              theDB,
		Server:          server,
		Cfg:             cfg,
		Repos:           reposet,
		Services:        serviceset,
		Clients:         clients,
		dbService:       dbService,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Run blocks serving HTTP until Shutdown is called.
func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	if addr == "" {
		addr = a.Cfg.Addr
	}
	a.Log.Info("Server listening", "addr", addr)
	return a.Server.Run(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return nil
	}
	a.Log.Info("Shutting down server...")
	return a.Server.Shutdown(ctx)
}

func (a *App) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var errs []error
	a.Clients.Close()
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush traces: %w", err))
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return errors.Join(errs...)
}
