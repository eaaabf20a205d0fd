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
	"golang.org/x/sync/errgroup"

	"github.com/typeflow/typeflow/internal/logger"
	"github.com/typeflow/typeflow/internal/retention"
	"github.com/typeflow/typeflow/internal/store"
	"github.com/typeflow/typeflow/internal/web"
	"github.com/typeflow/typeflow/internal/words"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("typeflow-web")

	var (
		port          = fs.Int64Long("port", 3000, "HTTP server port")
		databaseURL   = fs.StringLong("database-url", store.DefaultPath, "SQLite path or PostgreSQL URL")
		wordsFile     = fs.StringLong("words", "", "JSON word list (defaults to the built-in list)")
		rateLimit     = fs.IntLong("rate-limit", 30, "Result submissions allowed per IP per window")
		rateWindow    = fs.DurationLong("rate-window", time.Minute, "Rate limit window")
		retentionDays = fs.IntLong("retention-days", 0, "Delete results older than this many days (0 keeps everything)")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *rateLimit <= 0 {
		return errors.New("rate-limit must be positive")
	}
	if *rateWindow < time.Second {
		return errors.New("rate-window must be at least one second")
	}

	log := logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := store.Open(ctx, *databaseURL)
	if err != nil {
		return err
	}
	defer repo.Close()
	log.InfoContext(ctx, "connected to database", "postgres", store.IsPostgres(*databaseURL))

	var list words.List
	if *wordsFile == "" {
		list, err = words.Default(log)
	} else {
		list, err = words.LoadFile(*wordsFile, log)
	}
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "loaded word list", "count", len(list))

	router := web.NewRouter(repo, log, list)
	router.RateLimit = *rateLimit
	router.RateWindow = int(rateWindow.Seconds())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           router.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.InfoContext(ctx, "starting web server", "port", *port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		store.ExportPoolStats(ctx, repo, 15*time.Second)
		return nil
	})

	if *retentionDays > 0 {
		pruner := retention.NewPruner(repo, time.Duration(*retentionDays)*24*time.Hour, log)
		g.Go(func() error {
			return pruner.Run(ctx, time.Hour)
		})
	}

	return g.Wait()
}
