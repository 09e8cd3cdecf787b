// Package main - Entry point for the eventcost HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"eventcost/api"
	"eventcost/core/estimate"
	"eventcost/internal/config"
	"eventcost/internal/logging"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "eventcost-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "config file, JSON or YAML")
	addr := flag.String("addr", "", "server address (overrides config)")
	schedule := flag.String("schedule", "", "HCL tier schedule (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *schedule != "" {
		cfg.Pricing.ScheduleFile = *schedule
	}
	if cfg.Logging.Level == "warn" {
		cfg.Logging.Level = "info"
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.Logger.Named("server")

	estimator, err := estimate.NewFromFile(cfg.Pricing.ScheduleFile, logging.Logger)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := api.NewMetrics(registry)

	handler := api.NewHandler(estimator, cfg.Currency, logger, metrics)
	server := api.NewServer(version, handler, registry, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.ShutdownTimeout() == 0 {
		logging.Warn("shutdown timeout is zero; in-flight requests are dropped on exit")
	}
	logging.Info("listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("version", version),
		zap.String("schedule", estimator.Schedule().Name()),
	)
	if err := server.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout()); err != nil {
		logging.Error("server stopped", zap.Error(err))
		return err
	}
	logging.Sugar.Infof("shut down %s", cfg.Server.Addr)
	return nil
}
