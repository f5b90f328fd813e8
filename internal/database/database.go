package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodgram/backend/config"
)

func dsn(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
}

// WaitForDatabase pings the database over database/sql until it answers or
// the context expires. Run before opening the gorm connection so the server
// does not race a still-starting postgres container.
func WaitForDatabase(ctx context.Context, cfg *config.Config) error {
	db, err := sql.Open("postgres", dsn(cfg))
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	for {
		if err := db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("database did not become ready: %w", ctx.Err())
		case <-time.After(time.Second):
		}
	}
}

// New creates a new gorm database connection. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey regardless
// of driver.
func New(cfg *config.Config) (*gorm.DB, error) {
	logrus.WithFields(logrus.Fields{
		"host": cfg.DBHost,
		"port": cfg.DBPort,
		"user": cfg.DBUser,
	}).Info("connecting to database")

	db, err := gorm.Open(postgres.Open(dsn(cfg)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	logrus.Info("successfully connected to database")
	return db, nil
}
