package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	"ordertrack/internal/config"
	"ordertrack/internal/database"
	"ordertrack/internal/handler"
	"ordertrack/internal/mw"
	"ordertrack/internal/service"
	"ordertrack/internal/storage"
	"ordertrack/internal/worker"
)

func main() {
	cfg := config.New()

	// Persistence adapter
	var adapter storage.Adapter
	switch cfg.Storage {
	case "file":
		adapter = storage.NewFile(cfg.StorageFile)
		slog.Info("using file storage", "path", cfg.StorageFile)
	default:
		db, err := database.NewDB(context.Background(), cfg.DatabaseURI)
		if err != nil {
			slog.Error("failed to connect to DB", "error", err)
			os.Exit(1)
		}
		defer database.CloseDB(db)

		if err := database.InitSchema(db); err != nil {
			slog.Error("failed to init DB schema", "error", err)
			os.Exit(1)
		}
		adapter = storage.NewPostgres(db)
	}

	// Stores
	orderStore := service.NewOrderStore(adapter)
	masterStore := service.NewMasterStore(adapter)
	if err := orderStore.Load(context.Background()); err != nil {
		slog.Error("failed to load orders", "error", err)
		os.Exit(1)
	}
	if err := masterStore.Load(context.Background()); err != nil {
		slog.Error("failed to load masters", "error", err)
		os.Exit(1)
	}

	// Worker
	alertReporter := worker.NewAlertReporter(orderStore, cfg.AlertInterval)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.MetricsMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/api/orders", handler.ListOrdersHandler(orderStore))
	r.Get("/api/masters", handler.GetMastersHandler(masterStore))
	r.Get("/api/alerts", handler.AlertsHandler(orderStore))
	r.Handle("/metrics", promhttp.Handler())

	authEnabled := cfg.AdminPassword != ""
	if authEnabled {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to hash admin password", "error", err)
			os.Exit(1)
		}
		r.Post("/api/login", handler.LoginHandler(hash, cfg.JWTSecret))
	}

	// Mutating routes, token-guarded when an admin password is set
	r.Group(func(r chi.Router) {
		if authEnabled {
			r.Use(mw.AuthMiddleware(cfg.JWTSecret))
		}

		r.Post("/api/orders", handler.UpsertOrderHandler(orderStore))
		r.Post("/api/orders/batch", handler.AddBatchHandler(orderStore))
		r.Patch("/api/orders/{id}/status", handler.UpdateStatusHandler(orderStore))
		r.Delete("/api/orders/{id}", handler.DeleteOrderHandler(orderStore))

		r.Post("/api/masters", handler.ReplaceMastersHandler(masterStore))
		r.Post("/api/masters/{list}", handler.AddMasterHandler(masterStore))
		r.Post("/api/masters/{list}/move", handler.MoveMasterHandler(masterStore))
		r.Delete("/api/masters/{list}", handler.RemoveMasterHandler(masterStore))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go alertReporter.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress, "storage", cfg.Storage, "auth", authEnabled)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
