package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/typeflow/typeflow/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Fixed width so timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

var _ db.Repository = (*Repository)(nil)

// Repository implements db.Repository using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository
func New(ctx context.Context, dbPath string) (*Repository, error) {
	// Strip sqlite:// prefix if present
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	isNew := false
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		isNew = true
	}

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	// One writer; also keeps a :memory: database on a single connection
	sqliteDB.SetMaxOpenConns(1)

	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if isNew {
		slog.Info("created new SQLite database", "path", dbPath)
	}

	return &Repository{db: sqliteDB, now: time.Now}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Result methods

func (r *Repository) CreateResult(ctx context.Context, arg db.CreateResultParams) (db.Result, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO results (player, words, keystrokes, mistakes, skipped, duration_ms, kpm, accuracy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, arg.Player, arg.Words, arg.Keystrokes, arg.Mistakes, arg.Skipped, arg.DurationMs, arg.Kpm, arg.Accuracy, r.timestamp())
	if err != nil {
		return db.Result{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return db.Result{}, err
	}

	return r.GetResult(ctx, id)
}

const resultColumns = `id, player, words, keystrokes, mistakes, skipped, duration_ms, kpm, accuracy, created_at`

func (r *Repository) GetResult(ctx context.Context, id int64) (db.Result, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resultColumns+` FROM results WHERE id = ?`, id)
	return scanResult(row)
}

func (r *Repository) ListResults(ctx context.Context, arg db.ListResultsParams) ([]db.Result, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+resultColumns+`
		FROM results
		WHERE (? = '' OR player = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, arg.Player, arg.Player, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResults(rows)
}

func (r *Repository) TopResults(ctx context.Context, arg db.TopResultsParams) ([]db.Result, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+resultColumns+`
		FROM results
		WHERE (? = '' OR player = ?) AND created_at >= ?
		ORDER BY kpm DESC, accuracy DESC, created_at ASC
		LIMIT ? OFFSET ?
	`, arg.Player, arg.Player, formatTime(arg.Since), arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResults(rows)
}

func (r *Repository) CountResults(ctx context.Context, arg db.CountResultsParams) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM results WHERE (? = '' OR player = ?) AND created_at >= ?
	`, arg.Player, arg.Player, formatTime(arg.Since)).Scan(&count)
	return count, err
}

func (r *Repository) DeleteOldResults(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM results WHERE created_at < ?`, formatTime(before))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Preference methods

func (r *Repository) GetPreference(ctx context.Context, key string) (db.Preference, error) {
	var p db.Preference
	var updatedAtStr string
	err := r.db.QueryRowContext(ctx, `
		SELECT key, value, updated_at FROM preferences WHERE key = ?
	`, key).Scan(&p.Key, &p.Value, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Preference{}, db.ErrNoRows
	}
	if err != nil {
		return db.Preference{}, err
	}
	p.UpdatedAt = parseTime(updatedAtStr)
	return p, nil
}

func (r *Repository) ListPreferences(ctx context.Context) ([]db.Preference, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM preferences ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []db.Preference
	for rows.Next() {
		var p db.Preference
		var updatedAtStr string
		if err := rows.Scan(&p.Key, &p.Value, &updatedAtStr); err != nil {
			return nil, err
		}
		p.UpdatedAt = parseTime(updatedAtStr)
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

func (r *Repository) SetPreference(ctx context.Context, arg db.SetPreferenceParams) (db.Preference, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, arg.Key, arg.Value, r.timestamp())
	if err != nil {
		return db.Preference{}, err
	}
	return r.GetPreference(ctx, arg.Key)
}

// Helper functions

type scanner interface {
	Scan(dest ...any) error
}

func scanResultRow(s scanner) (db.Result, error) {
	var res db.Result
	var createdAtStr string
	err := s.Scan(&res.ID, &res.Player, &res.Words, &res.Keystrokes, &res.Mistakes, &res.Skipped,
		&res.DurationMs, &res.Kpm, &res.Accuracy, &createdAtStr)
	if err != nil {
		return db.Result{}, err
	}
	res.CreatedAt = parseTime(createdAtStr)
	return res, nil
}

func scanResult(row *sql.Row) (db.Result, error) {
	res, err := scanResultRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Result{}, db.ErrNoRows
	}
	return res, err
}

func scanResults(rows *sql.Rows) ([]db.Result, error) {
	var results []db.Result
	for rows.Next() {
		res, err := scanResultRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *Repository) timestamp() string {
	return formatTime(r.now())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
