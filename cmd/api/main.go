package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/mvillalba/verduleria-backend/api/routes"
	"github.com/mvillalba/verduleria-backend/internal/batches"
	"github.com/mvillalba/verduleria-backend/internal/carts"
	"github.com/mvillalba/verduleria-backend/internal/customers"
	"github.com/mvillalba/verduleria-backend/internal/deliveries"
	"github.com/mvillalba/verduleria-backend/internal/manifests"
	"github.com/mvillalba/verduleria-backend/internal/orders"
	"github.com/mvillalba/verduleria-backend/internal/payments"
	"github.com/mvillalba/verduleria-backend/internal/teams"
	"github.com/mvillalba/verduleria-backend/pkg/config"
	"github.com/mvillalba/verduleria-backend/pkg/db"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
	"github.com/mvillalba/verduleria-backend/pkg/migrate"
	"github.com/mvillalba/verduleria-backend/pkg/outbox"
	"github.com/mvillalba/verduleria-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()

	ordersRepo := orders.NewRepository(gormDB)
	batchesRepo := batches.NewRepository(gormDB)
	teamsRepo := teams.NewRepository(gormDB)
	customersRepo := customers.NewRepository(gormDB)
	cartsRepo := carts.NewRepository(gormDB)
	paymentsRepo := payments.NewRepository(gormDB)

	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)

	customersService, err := customers.NewService(customersRepo, redisClient, logg)
	exitOn(logg, "customers service", err)

	cartsService, err := carts.NewService(cartsRepo)
	exitOn(logg, "carts service", err)

	ordersService, err := orders.NewService(ordersRepo)
	exitOn(logg, "orders service", err)

	teamsService, err := teams.NewService(teamsRepo, customersService)
	exitOn(logg, "teams service", err)

	batchesService, err := batches.NewService(batchesRepo, ordersRepo, teamsRepo, dbClient)
	exitOn(logg, "batches service", err)

	paymentsService, err := payments.NewService(
		paymentsRepo,
		ordersRepo,
		cartsService,
		batchesService,
		outboxService,
		dbClient,
		redisClient,
		cfg.Notifications,
		logg,
	)
	exitOn(logg, "payments service", err)

	manifestsService, err := manifests.NewService(batchesService, ordersRepo, cartsService, customersService)
	exitOn(logg, "manifests service", err)

	deliveriesService, err := deliveries.NewService(ordersRepo, batchesService, outboxService, dbClient, logg)
	exitOn(logg, "deliveries service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			ordersService,
			batchesService,
			teamsService,
			customersService,
			paymentsService,
			manifestsService,
			deliveriesService,
		),
	}

	go func() {
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		<-sigCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "api server shut down gracefully")
}

func exitOn(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
