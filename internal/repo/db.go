// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and PostgreSQL, schema migrations, and the
// connectivity check and reset operations.
//
// All functions accept a *gorm.DB handle, so they work equally on the root
// handle or on a transaction. They follow the "thin repository" approach:
// no business logic, only persistence and query composition.
//
// Error semantics:
//   - Missing rows are reported as gorm.ErrRecordNotFound (exported here
//     as ErrNotFound).
//   - Constraint violations and connectivity problems are propagated raw;
//     the service layer classifies them.
package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-minitwit/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound so callers can use errors.Is with either.
var ErrNotFound = gorm.ErrRecordNotFound

// Supported drivers for Options.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and locates the database.
type Options struct {
	Driver string // sqlite (default) or postgres
	Path   string // SQLite file path, or a full "file:" DSN
	URL    string // PostgreSQL DSN

	// Tracing registers the OpenTelemetry GORM plugin.
	Tracing bool
	// Logger overrides the GORM logger (silent when nil).
	Logger logger.Interface
}

// Open connects to the configured database, applies connection tuning and
// verifies connectivity. SQLite connections get WAL, foreign keys and a busy
// timeout on every pooled connection.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         opts.Logger,
		TranslateError: true,
	}
	if gcfg.Logger == nil {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	var (
		dialector gorm.Dialector
		maxOpen   = 10
	)
	switch strings.ToLower(opts.Driver) {
	case "", DriverSQLite:
		dsn, err := sqliteDSN(opts.Path)
		if err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		if strings.TrimSpace(opts.URL) == "" {
			return nil, errors.New("repo: postgres requires a connection URL")
		}
		dialector = postgres.Open(opts.URL)
		maxOpen = 25
	default:
		return nil, fmt.Errorf("repo: unsupported driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, err
	}

	if opts.Tracing {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, err
		}
	}

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxOpen)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := Ping(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// sqliteDSN turns a file path into a DSN carrying per-connection pragmas.
// Full "file:" DSNs are passed through with the same pragmas appended.
func sqliteDSN(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("repo: sqlite requires a database path")
	}
	if !strings.HasPrefix(path, "file:") {
		// Fail early if the parent directory does not exist instead of
		// surfacing sqlite's "out of memory (14)".
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return "", err
			}
		}
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", nil
}

// AutoMigrate creates or updates the MiniTwit schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Message{},
		&domain.Follower{},
		&domain.Latest{},
	)
}

// Ping verifies that the database answers a round trip.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Reset deletes every row of the schema in dependency order, inside a
// single transaction.
func Reset(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&domain.Follower{}, &domain.Message{}, &domain.User{}, &domain.Latest{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
