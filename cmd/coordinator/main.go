package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-coordinator/internal/api/handlers"
	"auction-coordinator/internal/config"
	"auction-coordinator/internal/domain"
	"auction-coordinator/internal/infrastructure/memory"
	"auction-coordinator/internal/infrastructure/mysql"
	redisstore "auction-coordinator/internal/infrastructure/redis"
	"auction-coordinator/internal/infrastructure/rpc"
	ws "auction-coordinator/internal/infrastructure/websocket"
	"auction-coordinator/internal/services"
	"auction-coordinator/pkg/logger"

	redisClient "github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	log := logger.New()
	log.Info("Starting auction coordinator")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	log.Info("Loaded configuration", "config", cfg.GetConfigString())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, cleanup := initStore(ctx, cfg, log)
	defer cleanup()

	// Wire the core: stores, registry, fan-out, coordinator.
	auctionStore := services.NewAuctionStore(store)
	registry := services.NewRegistry(store)
	feed := ws.NewFeed(log)
	fanout := services.NewFanout(
		registry,
		rpc.NewHTTPCaller(),
		feed,
		cfg.Fanout.Concurrency,
		cfg.Fanout.CallTimeout,
		log,
	)
	coordinator := services.NewCoordinator(auctionStore, registry, fanout, cfg.Coordinator.ID, log)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	rpcHandler := handlers.NewRPCHandler(coordinator, log)
	rpcHandler.Register(e)

	feedHandler := handlers.NewFeedHandler(feed, log)
	feedHandler.Register(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":      "ok",
			"service":     "auction-coordinator",
			"coordinator": cfg.Coordinator.ID,
			"timestamp":   time.Now().Format(time.RFC3339),
		})
	})

	// Periodic registry size report.
	reporter := services.NewReporter(registry, cfg.Coordinator.ID, cfg.Reporter.Schedule, log)
	if err := reporter.Start(context.Background()); err != nil {
		log.Error("Failed to start reporter", "error", err)
		os.Exit(1)
	}

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting coordinator server", "address", serverAddr, "coordinator_id", cfg.Coordinator.ID)

	go func() {
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down coordinator...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	reporter.Stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Coordinator stopped")
}

// initStore builds the configured key-value backend and returns it with a
// cleanup function.
func initStore(ctx context.Context, cfg *config.Config, log logger.Logger) (domain.KVStore, func()) {
	switch cfg.Store.Backend {
	case "redis":
		rdb := redisClient.NewClient(&redisClient.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		log.Info("Connected to Redis", "address", cfg.Redis.Address)
		return redisstore.NewRedisStore(rdb), func() { rdb.Close() }

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			log.Error("Failed to connect to MySQL", "error", err)
			os.Exit(1)
		}
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

		if err := db.PingContext(ctx); err != nil {
			log.Error("Failed to ping MySQL", "error", err)
			os.Exit(1)
		}

		store := mysql.NewMySQLStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Error("Failed to ensure MySQL schema", "error", err)
			os.Exit(1)
		}
		log.Info("Connected to MySQL")
		return store, func() { db.Close() }

	case "memory":
		log.Warn("Using in-memory store; auction state will not survive restarts")
		return memory.NewMemoryStore(), func() {}

	default:
		log.Error("Unknown store backend", "backend", cfg.Store.Backend)
		os.Exit(1)
		return nil, nil
	}
}
