package db

import (
	"context"
	"time"
)

// Result is one finished typing session.
type Result struct {
	ID         int64
	Player     string
	Words      int32
	Keystrokes int32
	Mistakes   int32
	Skipped    int32
	DurationMs int64
	Kpm        float64
	Accuracy   float64
	CreatedAt  time.Time
}

// Preference is a persisted user setting.
type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type CreateResultParams struct {
	Player     string
	Words      int32
	Keystrokes int32
	Mistakes   int32
	Skipped    int32
	DurationMs int64
	Kpm        float64
	Accuracy   float64
}

type ListResultsParams struct {
	Player string
	Limit  int32
	Offset int32
}

type TopResultsParams struct {
	Player string
	Limit  int32
	Offset int32
	Since  time.Time
}

// CountResultsParams filters like TopResultsParams so totals match a page.
type CountResultsParams struct {
	Player string
	Since  time.Time
}

type SetPreferenceParams struct {
	Key   string
	Value string
}

// Repository defines the interface for database operations
type Repository interface {
	// Results
	CreateResult(ctx context.Context, arg CreateResultParams) (Result, error)
	GetResult(ctx context.Context, id int64) (Result, error)
	ListResults(ctx context.Context, arg ListResultsParams) ([]Result, error)
	TopResults(ctx context.Context, arg TopResultsParams) ([]Result, error)
	CountResults(ctx context.Context, arg CountResultsParams) (int64, error)

	// Preferences
	GetPreference(ctx context.Context, key string) (Preference, error)
	ListPreferences(ctx context.Context) ([]Preference, error)
	SetPreference(ctx context.Context, arg SetPreferenceParams) (Preference, error)

	// Retention/Cleanup
	DeleteOldResults(ctx context.Context, before time.Time) (int64, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
