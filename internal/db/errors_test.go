package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestIsNoRows(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"own", ErrNoRows, true},
		{"wrapped", fmt.Errorf("loading: %w", ErrNoRows), true},
		{"database/sql", sql.ErrNoRows, true},
		{"pgx", pgx.ErrNoRows, true},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		if got := IsNoRows(tt.err); got != tt.want {
			t.Errorf("IsNoRows(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
