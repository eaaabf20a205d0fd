package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/typeflow/typeflow/internal/db"
)

//go:embed schema.sql
var schemaSQL string

var _ db.Repository = (*Repository)(nil)

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL repository and applies the schema
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

// Pool exposes the underlying pool for callers that batch writes.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Result methods

const resultColumns = `id, player, words, keystrokes, mistakes, skipped, duration_ms, kpm, accuracy, created_at`

func (r *Repository) CreateResult(ctx context.Context, arg db.CreateResultParams) (db.Result, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO results (player, words, keystrokes, mistakes, skipped, duration_ms, kpm, accuracy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+resultColumns,
		arg.Player, arg.Words, arg.Keystrokes, arg.Mistakes, arg.Skipped, arg.DurationMs, arg.Kpm, arg.Accuracy)
	return scanResult(row)
}

func (r *Repository) GetResult(ctx context.Context, id int64) (db.Result, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resultColumns+` FROM results WHERE id = $1`, id)
	return scanResult(row)
}

func (r *Repository) ListResults(ctx context.Context, arg db.ListResultsParams) ([]db.Result, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+resultColumns+`
		FROM results
		WHERE ($1 = '' OR player = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, arg.Player, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanResultRow)
}

func (r *Repository) TopResults(ctx context.Context, arg db.TopResultsParams) ([]db.Result, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+resultColumns+`
		FROM results
		WHERE ($1 = '' OR player = $1) AND created_at >= $2
		ORDER BY kpm DESC, accuracy DESC, created_at ASC
		LIMIT $3 OFFSET $4
	`, arg.Player, arg.Since, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanResultRow)
}

func (r *Repository) CountResults(ctx context.Context, arg db.CountResultsParams) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM results WHERE ($1 = '' OR player = $1) AND created_at >= $2
	`, arg.Player, arg.Since).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldResults(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM results WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Preference methods

func (r *Repository) GetPreference(ctx context.Context, key string) (db.Preference, error) {
	var p db.Preference
	err := r.pool.QueryRow(ctx, `
		SELECT key, value, updated_at FROM preferences WHERE key = $1
	`, key).Scan(&p.Key, &p.Value, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Preference{}, db.ErrNoRows
	}
	return p, err
}

func (r *Repository) ListPreferences(ctx context.Context) ([]db.Preference, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value, updated_at FROM preferences ORDER BY key`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Preference, error) {
		var p db.Preference
		err := row.Scan(&p.Key, &p.Value, &p.UpdatedAt)
		return p, err
	})
}

func (r *Repository) SetPreference(ctx context.Context, arg db.SetPreferenceParams) (db.Preference, error) {
	var p db.Preference
	err := r.pool.QueryRow(ctx, `
		INSERT INTO preferences (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING key, value, updated_at
	`, arg.Key, arg.Value).Scan(&p.Key, &p.Value, &p.UpdatedAt)
	return p, err
}

// Helper functions

func scanResultRow(row pgx.CollectableRow) (db.Result, error) {
	var res db.Result
	err := row.Scan(&res.ID, &res.Player, &res.Words, &res.Keystrokes, &res.Mistakes, &res.Skipped,
		&res.DurationMs, &res.Kpm, &res.Accuracy, &res.CreatedAt)
	return res, err
}

func scanResult(row pgx.Row) (db.Result, error) {
	var res db.Result
	err := row.Scan(&res.ID, &res.Player, &res.Words, &res.Keystrokes, &res.Mistakes, &res.Skipped,
		&res.DurationMs, &res.Kpm, &res.Accuracy, &res.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Result{}, db.ErrNoRows
	}
	return res, err
}
