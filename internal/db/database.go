package db

import (
	"fmt"
	"time"

	"github.com/livreacesso/livre-acesso-backend/config"
	appLogger "github.com/livreacesso/livre-acesso-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second

	maxIdleConns    = 10
	maxOpenConns    = 50
	connMaxLifetime = time.Hour
)

var DB *gorm.DB

// Initialize opens the postgres connection and configures the pool.
// Startup races the database container, so the first dial is retried.
func Initialize(cfg *config.DatabaseConfig) error {
	dsn := cfg.DSN()

	appLogger.Info("Connecting to database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
	})

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent), // we log through pkg/logger
		})
		if err == nil {
			break
		}
		if attempt < connectAttempts {
			appLogger.Warn("Database not ready, retrying", map[string]interface{}{
				"attempt": attempt,
				"backoff": connectBackoff.String(),
			})
			time.Sleep(connectBackoff)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	appLogger.Info("Database connection established", map[string]interface{}{
		"max_idle_conns": maxIdleConns,
		"max_open_conns": maxOpenConns,
	})
	return nil
}

// Close closes the underlying connection pool.
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	return DB
}
