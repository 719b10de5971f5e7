package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stitchfield/storefront/internal/admin"
	"github.com/stitchfield/storefront/internal/config"
	"github.com/stitchfield/storefront/internal/contact"
	"github.com/stitchfield/storefront/internal/customer"
	"github.com/stitchfield/storefront/internal/db"
	handlerHttp "github.com/stitchfield/storefront/internal/handler/http"
	"github.com/stitchfield/storefront/internal/order"
	"github.com/stitchfield/storefront/internal/product"
	"github.com/stitchfield/storefront/internal/stats"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.App.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Info().Str("env", cfg.App.Env).Msg("starting storefront")

	if err := db.Migrate(cfg.Postgres); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx := context.Background()

	pg, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pg.Close()

	statsStore, err := stats.Open(cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open stats store")
	}
	defer statsStore.Close()

	customerSvc := customer.NewService(customer.NewRepository(pg.Pool))
	productSvc := product.NewService(product.NewRepository(pg.Pool))
	orderSvc := order.NewService(order.NewRepository(pg.Pool), customerSvc)
	contactSvc := contact.NewService(contact.NewRepository(pg.Pool))
	adminSvc := admin.NewService(admin.NewRepository(pg.Pool))

	if err := adminSvc.Bootstrap(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin account")
	}

	router := handlerHttp.NewRouter(handlerHttp.RouterDeps{
		Products: handlerHttp.NewProductHandler(productSvc),
		Orders:   handlerHttp.NewOrderHandler(orderSvc),
		Admin: handlerHttp.NewAdminHandler(
			adminSvc, customerSvc, orderSvc, statsStore, cfg.App.Env == "production"),
		Contact: handlerHttp.NewContactHandler(contactSvc),
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("storefront stopped gracefully")
}
