package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/menuopt/menu-optimizer/internal/config"
	"github.com/menuopt/menu-optimizer/internal/handlers"
	"github.com/menuopt/menu-optimizer/internal/middleware"
	"github.com/menuopt/menu-optimizer/internal/optimizer"
	"github.com/menuopt/menu-optimizer/internal/repository"
	"github.com/menuopt/menu-optimizer/internal/service"
	"github.com/menuopt/menu-optimizer/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting menu optimizer api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Initialize repository: CSV file when configured, sample data otherwise
	var menuRepo repository.MenuItemRepository
	if cfg.Data.ItemsFile != "" {
		log.Info("loading menu items", "file", cfg.Data.ItemsFile)
		items, err := repository.NewLoader().LoadMenuItems(cfg.Data.ItemsFile)
		if err != nil {
			log.Error("failed to load menu items", "error", err)
			os.Exit(1)
		}
		log.Info("menu items loaded", "total_items", len(items))
		menuRepo = repository.NewInMemoryMenuItemRepository(items)
	} else {
		log.Info("no items file configured, using sample menu data")
		menuRepo = repository.NewSeededMenuItemRepository()
	}

	// Initialize the optimization core
	opt := optimizer.New(
		optimizer.WithTimeLimit(time.Duration(cfg.Optimizer.SolveTimeLimitSeconds) * time.Second),
	)

	// Initialize services
	menuService := service.NewMenuService(menuRepo)
	optimizeService := service.NewOptimizeService(menuRepo, opt)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	menuHandler := handlers.NewMenuHandler(menuService, log)
	optimizeHandler := handlers.NewOptimizeHandler(optimizeService, cfg.Optimizer.MinItemsPerCategory, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Menu endpoints
		r.Get("/restaurant", menuHandler.ListRestaurants)
		r.Get("/restaurant/{restaurantId}/menu", menuHandler.GetMenu)
		r.Get("/restaurant/{restaurantId}/stats", menuHandler.GetStats)

		// Optimization endpoint, operator-only
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Post("/optimize", optimizeHandler.Optimize)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
