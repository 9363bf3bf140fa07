package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tattoo-backend/pkg/container"
	"tattoo-backend/pkg/logger"
)

// Serve builds the dependency container, starts the HTTP server and waits
// for SIGINT/SIGTERM to shut everything down gracefully.
func Serve() {
	c, err := container.NewContainer()
	if err != nil {
		log.Fatalf("❌ Failed to initialize container: %v", err)
	}

	router := SetupRouter(c)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", c.Config.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("🚀 %s listening on port %s", c.Config.App.Name, c.Config.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", err)
	}

	c.Cleanup()
	logger.Info("👋 Server stopped")
}
