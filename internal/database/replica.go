package database

import (
	"fmt"
	"time"

	"novelshelf/internal/config"
	"novelshelf/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// readDB holds the optional read-replica connection. Nil when no replica is
// configured; callers fall back to the primary.
var readDB *gorm.DB

// GetReadDB returns the read-replica connection, or nil if none is configured.
func GetReadDB() *gorm.DB {
	return readDB
}

// SetReadDB overrides the replica connection. Used by tests.
func SetReadDB(db *gorm.DB) {
	readDB = db
}

// ConnectReadReplica opens the read-replica connection when DB_READ_HOST is
// set. Replica failures are non-fatal: reads fall back to the primary.
func ConnectReadReplica(cfg *config.Config) {
	if cfg.DBReadHost == "" {
		return
	}

	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBReadHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		sslMode,
	)

	gormLogger := &CustomGormLogger{
		logger: middleware.Logger,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		middleware.Logger.Warn("Read replica unavailable, falling back to primary for reads")
		return
	}
	if err := configurePool(db, cfg); err == nil {
		readDB = db
		middleware.Logger.Info("Read replica connected")
	}
}
