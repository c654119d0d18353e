package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"finderid-api/internal/config"
	"finderid-api/internal/handler"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container := config.NewContainer()

	if err := container.SupabaseClient.Initialize(); err != nil {
		container.Logger.Error("Failed to initialize Supabase client", err)
		os.Exit(1)
	}

	// Handlers
	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(),
		Plans:        handler.NewPlanHandler(),
		Entitlements: handler.NewEntitlementHandler(container.EntitlementService, container.Location, container.Logger),
		Statuses:     handler.NewStatusHandler(container.StatusService, container.Location, container.Logger),
		Products:     handler.NewProductHandler(container.ProductService, container.Logger),
		Admin: handler.NewAdminHandler(
			container.Config.GetAdminSecret(),
			container.SubscriptionService,
			container.ExpirySweep,
			container.Logger,
		),
	}

	authMiddleware := handler.NewAuthMiddleware(
		container.AuthService,
		container.Logger,
	)

	// Router
	router := handler.NewRouter(
		handlers,
		authMiddleware.Middleware,
		container.Config.GetAllowedOrigins(),
	)

	// Background jobs
	if err := container.Scheduler.Start(); err != nil {
		container.Logger.Error("Failed to start scheduler", err)
		os.Exit(1)
	}

	// start server
	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr, "timezone", container.Location.String())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("Server shutdown failed", err)
	}

	select {
	case <-container.Scheduler.Stop().Done():
	case <-ctx.Done():
		container.Logger.Warn("Scheduler did not stop before shutdown deadline")
	}

	container.Logger.Info("Server exited")
}
