package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Skotchmaster/basic_shop/internal/config"
	"github.com/Skotchmaster/basic_shop/internal/db"
	"github.com/Skotchmaster/basic_shop/internal/es"
	"github.com/Skotchmaster/basic_shop/internal/httpserver"
	"github.com/Skotchmaster/basic_shop/internal/logging"
	"github.com/Skotchmaster/basic_shop/internal/mykafka"
	"github.com/Skotchmaster/basic_shop/internal/repo"
	"github.com/Skotchmaster/basic_shop/internal/service"
	"github.com/Skotchmaster/basic_shop/internal/service/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	if !producer.Enabled() {
		logger.Info("kafka disabled, events will not be published")
	}

	searcher := search.New(nil, cfg.ESIndex)
	if cfg.SearchEnabled() {
		client, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		searcher = search.New(client, cfg.ESIndex)
	}

	r := &repo.GormRepo{DB: gdb}
	catalogSvc := &service.CatalogService{Repo: r, Events: producer, Index: searcher, Topic: cfg.KafkaProductTopic}
	cartSvc := &service.CartService{Repo: r, Events: producer, Index: searcher, Topic: cfg.KafkaCartTopic}

	e := httpserver.New(logger, &httpserver.Deps{
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		SearchHandler:  &httpserver.SearchHTTP{Searcher: searcher},
		HealthHandler:  &httpserver.HealthHTTP{DB: gdb},
		AdminJWTSecret: cfg.AdminJWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("shop listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
