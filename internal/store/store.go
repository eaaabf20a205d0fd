// Package store picks the results backend from a database URL.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/typeflow/typeflow/internal/db"
	"github.com/typeflow/typeflow/internal/db/postgres"
	"github.com/typeflow/typeflow/internal/db/sqlite"
	"github.com/typeflow/typeflow/internal/metrics"
)

// DefaultPath is used when no database URL is configured.
const DefaultPath = "./typeflow.db"

// IsPostgres reports whether databaseURL names a PostgreSQL server.
func IsPostgres(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")
}

// Open connects to PostgreSQL for postgres:// URLs and opens a SQLite file otherwise.
func Open(ctx context.Context, databaseURL string) (db.Repository, error) {
	if databaseURL == "" {
		databaseURL = DefaultPath
	}
	if IsPostgres(databaseURL) {
		repo, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
		}
		return repo, nil
	}
	repo, err := sqlite.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite: %w", err)
	}
	return repo, nil
}

// ExportPoolStats copies pgxpool stats into the DB pool gauges every interval
// until ctx is done. It returns at once for backends without a pool.
func ExportPoolStats(ctx context.Context, repo db.Repository, interval time.Duration) {
	pg, ok := repo.(*postgres.Repository)
	if !ok {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s := pg.Pool().Stat()
			metrics.DBPoolTotalConns.Set(float64(s.TotalConns()))
			metrics.DBPoolIdleConns.Set(float64(s.IdleConns()))
			metrics.DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
			metrics.DBPoolMaxConns.Set(float64(s.MaxConns()))
		case <-ctx.Done():
			return
		}
	}
}
