package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.WaitForDatabase(waitCtx, cfg); err != nil {
		cancel()
		logrus.Fatalf("database not reachable: %v", err)
	}
	cancel()

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("failed to run migrations: %v", err)
	}

	srv, err := server.New(cfg, db)
	if err != nil {
		logrus.Fatalf("failed to build server: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logrus.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		logrus.Infof("received signal: %v", sig)
	}

	logrus.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("server shutdown error: %v", err)
	}
	logrus.Info("server stopped")
}
