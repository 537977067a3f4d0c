package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Govind-619/inventory-manager/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// OpenDatabase connects to postgres and configures the connection pool.
// The caller owns the handle and must release it with CloseDatabase.
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(cfg),
	}

	var db *gorm.DB
	var err error
	for i := range connectAttempts {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			break
		}
		utils.LogError("Connection attempt %d failed: %v", i+1, err)
		if i < connectAttempts-1 {
			time.Sleep(connectBackoff)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	utils.LogInfo("Connected to database")
	return db, nil
}

// CloseDatabase releases the connection pool
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormLogger(cfg *Config) logger.Interface {
	var writer logger.Writer = log.New(os.Stdout, "\r\n", log.LstdFlags)

	// every statement goes to the debug log in development; only slow
	// queries and failures reach the error log in production
	level := logger.Info
	if cfg.IsProduction() {
		level = logger.Warn
		if utils.ErrorLogger != nil {
			writer = utils.ErrorLogger
		}
	} else if utils.DebugLogger != nil {
		writer = utils.DebugLogger
	}

	return logger.New(writer, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
