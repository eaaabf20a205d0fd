// worker prunes old results from a shared leaderboard database. Run one
// worker next to any number of web replicas instead of --retention-days.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/typeflow/typeflow/internal/logger"
	"github.com/typeflow/typeflow/internal/retention"
	"github.com/typeflow/typeflow/internal/store"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("typeflow-worker")
	var (
		databaseURL   = fs.StringLong("database-url", "", "SQLite path or PostgreSQL URL")
		retentionDays = fs.IntLong("retention-days", 90, "Delete results older than this many days")
		interval      = fs.DurationLong("interval", 1*time.Hour, "Pruning interval")
		metricsAddr   = fs.StringLong("metrics-addr", ":9090", "Address for the Prometheus metrics server")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *databaseURL == "" {
		return errors.New("database-url is required")
	}
	if *retentionDays <= 0 {
		return errors.New("retention-days must be positive")
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	log := logger.Init()

	repo, err := store.Open(ctx, *databaseURL)
	if err != nil {
		return err
	}
	defer repo.Close()

	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsServer := &http.Server{Addr: *metricsAddr, Handler: metricsMux, ReadHeaderTimeout: 10 * time.Second}
		log.InfoContext(ctx, "starting metrics server", "addr", *metricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()

	go store.ExportPoolStats(ctx, repo, 15*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("received signal, shutting down", "signal", sig)
		cancel(errors.New("signal received"))
	}()

	pruner := retention.NewPruner(repo, time.Duration(*retentionDays)*24*time.Hour, log)
	return pruner.Run(ctx, *interval)
}
