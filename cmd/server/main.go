package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/iho/backoffice/internal/adapter/http"
	"github.com/iho/backoffice/internal/adapter/http/handler"
	postgresRepo "github.com/iho/backoffice/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/backoffice/internal/adapter/repository/redis"
	"github.com/iho/backoffice/internal/infrastructure/config"
	"github.com/iho/backoffice/internal/infrastructure/logger"
	"github.com/iho/backoffice/internal/infrastructure/metrics"
	"github.com/iho/backoffice/internal/infrastructure/postgres"
	"github.com/iho/backoffice/internal/infrastructure/redis"
	"github.com/iho/backoffice/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	firmRepo := postgresRepo.NewFirmRepository(pool)
	partyRepo := postgresRepo.NewPartyRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool, retrier)
	chequeRepo := postgresRepo.NewChequeRepository(pool)
	orderRepo := postgresRepo.NewOrderRepository(pool)
	billRepo := postgresRepo.NewBillRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	lockManager := redisRepo.NewLockManager(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Use cases
	firmUC := usecase.NewFirmUseCase(firmRepo, idGen)
	partyUC := usecase.NewPartyUseCase(partyRepo, firmRepo, idGen)
	movementUC := usecase.NewMovementUseCase(movementRepo, partyRepo, lockManager, idGen, appMetrics)
	chequeUC := usecase.NewChequeUseCase(txManager, chequeRepo, movementRepo, partyRepo, idGen, appMetrics)
	orderUC := usecase.NewOrderUseCase(orderRepo, partyRepo, idGen)
	billUC := usecase.NewBillUseCase(billRepo, partyRepo, idGen)
	statementUC := usecase.NewStatementUseCase(partyRepo, movementRepo, log, appMetrics)

	// HTTP layer
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		FirmHandler:      handler.NewFirmHandler(firmUC),
		PartyHandler:     handler.NewPartyHandler(partyUC),
		MovementHandler:  handler.NewMovementHandler(movementUC),
		ChequeHandler:    handler.NewChequeHandler(chequeUC),
		OrderHandler:     handler.NewOrderHandler(orderUC),
		BillHandler:      handler.NewBillHandler(billUC),
		StatementHandler: handler.NewStatementHandler(statementUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         net.JoinHostPort("", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
