package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"shareit/internal/cache"
	"shareit/internal/config"
	"shareit/internal/db"
	"shareit/internal/handler"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/repository"
	"shareit/internal/router"
	"shareit/internal/service"
)

// @title ShareIt API
// @version 1.0
// @description Peer-to-peer item rental: users, items, bookings and item requests.
// @host localhost:9090
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}
	logger := logging.Component(baseLogger, "server-main")

	gormDB, err := initDatabase(cfg, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	cacheClient := initCache(cfg, logger)
	if cacheClient != nil {
		defer cacheClient.Close()
	}

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
	}

	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	requestRepo := repository.NewItemRequestRepository(gormDB)

	userService := service.NewUserService(userRepo, cacheClient, cfg.Redis.UserTTL, baseLogger)
	itemService := service.NewItemService(itemRepo, bookingRepo, commentRepo, requestRepo, userService, service.UTCNow, baseLogger)
	bookingService := service.NewBookingService(bookingRepo, itemRepo, userService, service.UTCNow, baseLogger)
	requestService := service.NewItemRequestService(requestRepo, userService, service.UTCNow, baseLogger)

	e := echo.New()
	router.Register(e, cfg, baseLogger, router.Handlers{
		Users:    handler.NewUserHandler(userService),
		Items:    handler.NewItemHandler(itemService),
		Bookings: handler.NewBookingHandler(bookingService),
		Requests: handler.NewItemRequestHandler(requestService),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, e, ":"+cfg.Server.Port, logger)
}

func initDatabase(cfg *config.Config, logger *zerolog.Logger) (*gorm.DB, error) {
	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.Database.Driver).Msg("open database")
		return nil, err
	}
	if cfg.Server.ResetDB {
		logger.Warn().Msg("RESET_DB set, dropping all tables")
		err = db.Reset(gormDB)
	} else {
		err = db.Migrate(gormDB)
	}
	if err != nil {
		logger.Error().Err(err).Msg("prepare schema")
		return nil, err
	}
	return gormDB, nil
}

func initCache(cfg *config.Config, logger *zerolog.Logger) *cache.Client {
	if cfg.Redis.Address == "" {
		return nil
	}
	client := cache.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without cache")
		_ = client.Close()
		return nil
	}
	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return client
}

func serve(ctx context.Context, e *echo.Echo, addr string, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
