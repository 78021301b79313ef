package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodiegv/config"
	httpapi "foodiegv/storefront-svc/internal/api/http"
	"foodiegv/storefront-svc/internal/service"
	"foodiegv/storefront-svc/internal/storage"
)

type catalogStore interface {
	service.CatalogRepository
	service.ReviewRepository
}

func main() {
	config.LoadEnv()
	cfg := config.LoadServer()
	logger := cfg.ServerLog

	var store catalogStore
	switch cfg.CatalogBackend {
	case config.CatalogPostgres:
		db := config.MustInitPostgres()
		defer db.Close()

		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		store = repo
	default:
		repo, err := storage.NewFixtureRepository(cfg.FixtureDir)
		if err != nil {
			log.Fatalf("Failed to load catalog fixture: %v", err)
		}
		store = repo
	}

	var publisher service.ReviewPublisher
	if writer := config.NewKafkaWriter(cfg.KafkaBroker, cfg.ReviewTopic); writer != nil {
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		logger.Printf("KAFKA_BROKER not set, review events are not published")
	}

	handler := httpapi.NewHandler(
		service.NewCatalogService(store),
		service.NewReviewService(store, publisher, logger),
		service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
		httpapi.NewRateLimiter(cfg.ReviewRatePerMin),
		logger,
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewRouter(handler, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Printf("Storefront Service starting on %s (catalog: %s)", cfg.Addr, cfg.CatalogBackend)
		errChan <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	case sig := <-sigChan:
		logger.Printf("Received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
	}
}
