package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-coordinator/internal/config"
	"auction-coordinator/internal/infrastructure/rpc"
	"auction-coordinator/internal/subscriber"
	"auction-coordinator/pkg/logger"
)

func main() {
	log := logger.New()
	log.Info("Starting auction subscriber")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	client := rpc.NewClient(cfg.Subscriber.CoordinatorURL, rpc.NewHTTPCaller())
	agent := subscriber.NewAgent(cfg.Subscriber.AdvertiseURL, client, log)

	serverAddr := fmt.Sprintf("0.0.0.0:%d", cfg.Subscriber.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: agent.Routes(),
	}

	go func() {
		log.Info("Subscriber listening", "address", serverAddr, "advertise_url", cfg.Subscriber.AdvertiseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// The push endpoint must be up before the coordinator learns about it,
	// so register after the listener starts.
	if err := agent.Register(context.Background()); err != nil {
		log.Error("Failed to register with coordinator", "coordinator_url", cfg.Subscriber.CoordinatorURL, "error", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down subscriber...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Subscriber stopped")
}
