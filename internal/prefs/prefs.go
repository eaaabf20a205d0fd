// Package prefs caches user settings in memory. Values are read from the store
// once at startup and written back only when they change.
package prefs

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/typeflow/typeflow/internal/db"
)

const (
	KeyMinimalMode = "minimal_mode"
	KeyWordCount   = "word_count"
	KeyPlayer      = "player"
)

// Store is the subset of db.Repository that prefs needs.
type Store interface {
	ListPreferences(ctx context.Context) ([]db.Preference, error)
	SetPreference(ctx context.Context, arg db.SetPreferenceParams) (db.Preference, error)
}

// Prefs is safe for concurrent use.
type Prefs struct {
	store Store

	mu     sync.RWMutex
	values map[string]string
}

// Load reads every stored preference.
func Load(ctx context.Context, store Store) (*Prefs, error) {
	stored, err := store.ListPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}
	p := &Prefs{store: store, values: make(map[string]string, len(stored))}
	for _, s := range stored {
		p.values[s.Key] = s.Value
	}
	return p, nil
}

// Get returns the value for key and whether it was set.
func (p *Prefs) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

// String returns the value for key, or def if unset.
func (p *Prefs) String(key, def string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	return def
}

// Bool returns the value for key, or def if unset or unparseable.
func (p *Prefs) Bool(key string, def bool) bool {
	v, ok := p.Get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Int returns the value for key, or def if unset or unparseable.
func (p *Prefs) Int(key string, def int) int {
	v, ok := p.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Set stores value for key. The store is only written when the value differs
// from the cached one.
func (p *Prefs) Set(ctx context.Context, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cur, ok := p.values[key]; ok && cur == value {
		return nil
	}
	if _, err := p.store.SetPreference(ctx, db.SetPreferenceParams{Key: key, Value: value}); err != nil {
		return fmt.Errorf("saving preference %s: %w", key, err)
	}
	p.values[key] = value
	return nil
}

func (p *Prefs) SetBool(ctx context.Context, key string, value bool) error {
	return p.Set(ctx, key, strconv.FormatBool(value))
}

func (p *Prefs) SetInt(ctx context.Context, key string, value int) error {
	return p.Set(ctx, key, strconv.Itoa(value))
}
