// Package db opens the configured invoice store.
package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/hoadon/internal/config"
	"github.com/diewo77/hoadon/internal/store"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// Open connects to the SQL database described by cfg. Postgres connections
// are retried a few times to give a starting database time to come up.
func Open(cfg config.StoreConfig, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.DSN, err)
		}
		return db, nil
	case config.DriverPostgres:
		var db *gorm.DB
		var err error
		for i := 1; i <= connectAttempts; i++ {
			db, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
			if err == nil {
				return db, nil
			}
			log.Warn("database connection failed, retrying",
				zap.Int("attempt", i), zap.Int("max", connectAttempts), zap.Error(err))
			if i < connectAttempts {
				time.Sleep(connectBackoff)
			}
		}
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Migrate creates or updates the invoice table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&store.Record{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenStore returns the store selected by cfg.Driver. SQL stores are
// migrated before use.
func OpenStore(cfg config.StoreConfig, log *zap.Logger) (store.Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Driver == "" || cfg.Driver == config.DriverFile {
		log.Info("using file store", zap.String("path", cfg.DataFile))
		return store.NewFileStore(cfg.DataFile), nil
	}
	db, err := Open(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("using sql store", zap.String("driver", cfg.Driver))
	return store.NewSQLStore(db), nil
}
