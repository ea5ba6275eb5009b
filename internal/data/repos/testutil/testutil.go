package testutil

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/experience-marketplace/internal/data/db"
	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

var (
	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

var errNoPostgres = errors.New("TEST_POSTGRES_DSN not set")

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated database. With TEST_POSTGRES_DSN set every caller
// shares one Postgres handle and should isolate itself with Tx; otherwise each
// call gets its own in-memory SQLite database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	if conn, err := postgresDB(); err == nil {
		return conn
	} else if !errors.Is(err, errNoPostgres) {
		tb.Fatalf("failed to init test db: %v", err)
	}
	return SQLite(tb)
}

func postgresDB() (*gorm.DB, error) {
	pgOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			pgErr = errNoPostgres
			return
		}
		conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
			TranslateError: true,
		})
		if err != nil {
			pgErr = err
			return
		}
		if err := migrate(conn); err != nil {
			pgErr = err
			return
		}
		pgDB = conn
	})
	return pgDB, pgErr
}

// SQLite opens a fresh, migrated in-memory database with foreign keys on.
func SQLite(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := db.SQLiteDSN("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })
	if err := migrate(conn); err != nil {
		tb.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

func Tx(tb testing.TB, conn *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := conn.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func migrate(conn *gorm.DB) error {
	if err := db.AutoMigrateAll(conn); err != nil {
		return err
	}
	return db.EnsureMarketplaceIndexes(conn)
}
