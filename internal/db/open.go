package db

import (
	"context"                     // Ping timeout
	"fmt"                         // DSN formatting and error wrapping
	"time"                        // Timeouts and slow query threshold
	"user_orders/internal/config" // Custom package for configuration

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // Postgres driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger interface
)

// DSN builds the data source name for the configured driver
func DSN(cfg *config.Config) (string, error) {
	switch cfg.DBDriver {
	case "", "mysql":
		port := cfg.DBPort
		if port == "" {
			port = "3306"
		}
		// clientFoundRows makes RowsAffected report matched rows, which the stale-write check relies on
		return cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + port + ")/" + cfg.DBName +
			"?parseTime=true&clientFoundRows=true", nil
	case "postgres":
		port := cfg.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, port), nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Open connects to the configured database and verifies the connection
func Open(cfg *config.Config) (*gorm.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	dialector := mysql.Open(dsn) // Default dialector
	if cfg.DBDriver == "postgres" {
		dialector = postgres.Open(dsn)
	}
	db, err := gorm.Open(dialector, GormConfig(logrus.StandardLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)                  // Connection pool upper bound
	sqlDB.SetMaxIdleConns(5)                   // Idle connections kept warm
	sqlDB.SetConnMaxLifetime(30 * time.Minute) // Recycle long-lived connections
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return db, nil
}

// GormConfig returns the gorm settings shared by the server, migrations and tests
func GormConfig(log *logrus.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true, // Map driver unique violations to gorm.ErrDuplicatedKey
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow query warning
			LogLevel:                  logger.Warn,            // Only warnings and errors
			IgnoreRecordNotFoundError: true,                   // Lookups miss on purpose
		}),
	}
}
