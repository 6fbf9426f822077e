package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/SlotMachine_Go/internal/bootstrap"
	"github.com/osse101/SlotMachine_Go/internal/config"
	"github.com/osse101/SlotMachine_Go/internal/server"
	"github.com/osse101/SlotMachine_Go/internal/sse"
	"github.com/osse101/SlotMachine_Go/internal/wsgateway"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg, os.Stdout)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	eventBus := bootstrap.InitializeEventSystem()

	sseHub := sse.NewHub()
	sseHub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		SSEHub:   sseHub,
	}); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	machine, err := bootstrap.NewMachine(cfg, eventBus)
	if err != nil {
		slog.Error("Failed to create slot machine", "error", err)
		os.Exit(1)
	}

	wsCfg := wsgateway.DefaultConfig()
	wsCfg.AllowedOrigins = cfg.AllowedOrigins
	gateway := wsgateway.New(machine, wsCfg)
	machine.AddPresenter(gateway)

	srv := server.NewServer(cfg, machine, gateway, sseHub)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	sig := <-stop
	slog.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:  srv,
		Gateway: gateway,
		SSEHub:  sseHub,
		Machine: machine,
	})
}
