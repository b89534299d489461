// Package db opens the gorm database configured for the briefboard.
package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/briefboard/briefboard/internal/config"
	"github.com/briefboard/briefboard/internal/db/dsn"
	"github.com/briefboard/briefboard/internal/db/models"
	"github.com/briefboard/briefboard/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Dialector returns the gorm driver for cfg.DB.GormEngine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.GormEngineMySQL:
		return gormmysql.Open(dsn.Create(cfg)), nil
	case config.GormEnginePostgres:
		return gormpostgres.Open(dsn.Postgres(cfg)), nil
	case config.GormEngineSQLite:
		return sqlite.Open(dsn.SQLite(cfg)), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}
}

// newGormLogger routes gorm output to zerolog. Statement traces are only
// written in dev mode or at debug level, otherwise gorm reports slow queries
// and errors, which are logged as warnings.
func newGormLogger(cfg *config.Config) gormlogger.Interface {
	logLevel, writerLevel := gormlogger.Warn, zerolog.WarnLevel
	if cfg.DevMode || zerolog.GlobalLevel() <= zerolog.DebugLevel {
		logLevel, writerLevel = gormlogger.Info, zerolog.DebugLevel
	}

	return gormlogger.New(stdlogger.NewWithLevel(writerLevel), gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Open connects the configured database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DB.GormEngine, err)
	}

	if cfg.DB.GormEngine == config.GormEngineSQLite {
		// sqlite allows a single writer, an in-memory database exists per connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite pool: %w", err)
		}

		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}
