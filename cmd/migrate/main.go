package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.WaitForDatabase(ctx, cfg); err != nil {
		logrus.Fatalf("database not reachable: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("schema is up to date")
}
