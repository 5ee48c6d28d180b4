package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantumauth-io/quantum-go-utils/log"

	clientconfig "github.com/quantumauth-io/quantum-oracle-client/cmd/quantum-oracle-client/config"
	"github.com/quantumauth-io/quantum-oracle-client/internal/engine"
	clienthttp "github.com/quantumauth-io/quantum-oracle-client/internal/http"
	"github.com/quantumauth-io/quantum-oracle-client/internal/httpui"
	"github.com/quantumauth-io/quantum-oracle-client/internal/poller"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	log.Info("quantum-oracle-client",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := clientconfig.Load()
	if err != nil {
		log.Fatal("failed to parse config", "error", err)
	}

	wallet, err := newWallet(ctx, cfg)
	if err != nil {
		log.Error("wallet init failed", "error", err)
		return
	}
	defer wallet.Close()

	reader, err := newPriceReader(ctx, cfg, wallet)
	if err != nil {
		log.Error("price reader init failed", "error", err)
		return
	}

	sink, closeSink := newNotifier(ctx, cfg)
	defer closeSink()

	eng, err := engine.New(engine.Config{
		Poll: poller.Config{
			Interval: cfg.Polling.Interval,
			Timeout:  cfg.Polling.Timeout,
		},
		ChainCheckInterval: cfg.Polling.ChainCheckInterval,
	}, wallet.provider, reader, cfg.Oracle.Assets, sink)
	if err != nil {
		log.Error("engine init failed", "error", err)
		return
	}

	ui, err := httpui.Handler()
	if err != nil {
		log.Error("dashboard page init failed", "error", err)
		return
	}

	router := clienthttp.NewRouter(clienthttp.NewHandler(eng, reader.Strategy()), cfg.ClientSettings.AllowedOrigins, ui)
	server := clienthttp.NewServer(net.JoinHostPort(cfg.ClientSettings.LocalHost, cfg.ClientSettings.Port), router)
	if err = server.Start(); err != nil {
		log.Error("HTTP server start failed", "error", err)
		return
	}

	if err = eng.Start(ctx); err != nil {
		log.Error("engine start failed", "error", err)
		return
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = eng.Close(shutdownCtx); err != nil {
		log.Error("engine close failed", "error", err)
	}
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	} else {
		log.Info("HTTP server gracefully stopped")
	}
}
