package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string

	// DSN overrides the individual postgres fields when set.
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	SQLitePath string

	SlowThreshold time.Duration
	LogLevel      string
	NowFunc       func() time.Time
}

func (c Config) postgresDSN() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		sslMode,
	)
}

// SQLiteDSN enables foreign keys, which SQLite leaves off by default.
func SQLiteDSN(path string) string {
	if path == "" {
		path = "marketplace.db"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if strings.Contains(path, "_foreign_keys") || strings.Contains(path, "_fk") {
		return path
	}
	return path + sep + "_foreign_keys=on"
}

type DatabaseService struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func NewDatabaseService(cfg Config, logg *logger.Logger) (*DatabaseService, error) {
	serviceLog := logg.With("service", "DatabaseService")

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverPostgres
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.postgresDSN())
	case DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := Open(dialector, cfg, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}

	serviceLog.Info("Database connected", "driver", driver)
	return &DatabaseService{db: db, driver: driver, log: serviceLog}, nil
}

// Open builds a gorm handle whose SQL log goes through zap.
func Open(dialector gorm.Dialector, cfg Config, logg *logger.Logger) (*gorm.DB, error) {
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}

	var gormLog gormLogger.Interface
	if logg == nil || logg.SugaredLogger == nil {
		gormLog = gormLogger.Default.LogMode(gormLogger.Silent)
	} else {
		gormLog = gormLogger.New(
			zap.NewStdLog(logg.SugaredLogger.Desugar()),
			gormLogger.Config{
				SlowThreshold:             slow,
				LogLevel:                  parseLogLevel(cfg.LogLevel),
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		)
	}

	gcfg := &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	}
	if cfg.NowFunc != nil {
		gcfg.NowFunc = cfg.NowFunc
	}
	return gorm.Open(dialector, gcfg)
}

func parseLogLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

func (s *DatabaseService) DB() *gorm.DB { return s.db }

func (s *DatabaseService) Driver() string { return s.driver }

func (s *DatabaseService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *DatabaseService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
