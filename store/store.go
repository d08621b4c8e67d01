// Package store keeps the staging and production tables and reconciles them.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/candidatos-info/civic-enrichers/civic"
	"github.com/candidatos-info/civic-enrichers/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	// DriverPostgres is the production database.
	DriverPostgres = "postgres"
	// DriverSQLite is used for development runs and tests.
	DriverSQLite = "sqlite"

	batchSize = 200
	chunkSize = 500
)

var (
	// ErrNotFound is returned when a row a caller names does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnresolved means a staged row references a slug that neither
	// staging nor production holds. Running the merge again cannot fix it.
	ErrUnresolved = errors.New("unresolved reference")
)

// Store wraps the database handle.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to a postgres or sqlite database. SQLite runs on a single
// connection so in-memory databases are shared by every statement.
func Open(driver, dsn string, log *logger.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver [%s]", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s, error %w", driver, err)
	}
	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sqlite handle, error %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return New(db, log), nil
}

func gormLog() gormLogger.Interface {
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// New wraps an open gorm handle.
func New(db *gorm.DB, log *logger.Logger) *Store {
	return &Store{db: db, log: log.With("service", "Store")}
}

// DB exposes the handle for callers that need raw queries.
func (s *Store) DB() *gorm.DB { return s.db }

// Migrate creates or updates the production and staging tables.
func (s *Store) Migrate(ctx context.Context) error {
	models := append(civic.ProductionModels(), civic.StagingModels()...)
	if err := s.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate tables, error %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
