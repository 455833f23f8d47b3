package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/config"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/database"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/handlers"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/middleware"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}
	cancel()

	metrics := utils.NewMetricsCollector()
	sessions := middleware.NewSessionManager(cfg.JWTSecret)
	server := handlers.NewServer(db, sessions, metrics, logger)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      server.Routes(corsConfig),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Shut down cleanly on SIGINT/SIGTERM: stop accepting requests, then
	// release the database connection.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Error("database disconnect failed", "error", err)
	}
}
