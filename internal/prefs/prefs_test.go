package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/typeflow/typeflow/internal/db"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListPreferences(ctx context.Context) ([]db.Preference, error) {
	args := m.Called(ctx)
	prefs, _ := args.Get(0).([]db.Preference)
	return prefs, args.Error(1)
}

func (m *mockStore) SetPreference(ctx context.Context, arg db.SetPreferenceParams) (db.Preference, error) {
	args := m.Called(ctx, arg)
	return db.Preference{Key: arg.Key, Value: arg.Value}, args.Error(0)
}

func TestLoadAndRead(t *testing.T) {
	store := new(mockStore)
	store.On("ListPreferences", mock.Anything).Return([]db.Preference{
		{Key: KeyMinimalMode, Value: "true"},
		{Key: KeyWordCount, Value: "15"},
		{Key: KeyPlayer, Value: "alice"},
		{Key: "broken", Value: "nope"},
	}, nil)

	p, err := Load(context.Background(), store)
	require.NoError(t, err)

	assert.True(t, p.Bool(KeyMinimalMode, false))
	assert.Equal(t, 15, p.Int(KeyWordCount, 10))
	assert.Equal(t, "alice", p.String(KeyPlayer, "anon"))
	assert.Equal(t, 7, p.Int("missing", 7))
	assert.Equal(t, 3, p.Int("broken", 3))
	assert.True(t, p.Bool("broken", true))

	_, ok := p.Get("missing")
	assert.False(t, ok)
	store.AssertExpectations(t)
}

func TestLoadError(t *testing.T) {
	store := new(mockStore)
	store.On("ListPreferences", mock.Anything).Return(nil, errors.New("disk full"))

	_, err := Load(context.Background(), store)
	assert.ErrorContains(t, err, "disk full")
}

func TestSetWritesOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("ListPreferences", mock.Anything).Return([]db.Preference{{Key: KeyMinimalMode, Value: "false"}}, nil)
	store.On("SetPreference", mock.Anything, db.SetPreferenceParams{Key: KeyMinimalMode, Value: "true"}).Return(nil).Once()
	store.On("SetPreference", mock.Anything, db.SetPreferenceParams{Key: KeyWordCount, Value: "20"}).Return(nil).Once()

	p, err := Load(ctx, store)
	require.NoError(t, err)

	require.NoError(t, p.SetBool(ctx, KeyMinimalMode, false))
	require.NoError(t, p.SetBool(ctx, KeyMinimalMode, true))
	require.NoError(t, p.SetBool(ctx, KeyMinimalMode, true))
	require.NoError(t, p.SetInt(ctx, KeyWordCount, 20))
	require.NoError(t, p.SetInt(ctx, KeyWordCount, 20))

	assert.True(t, p.Bool(KeyMinimalMode, false))
	assert.Equal(t, 20, p.Int(KeyWordCount, 0))
	store.AssertNumberOfCalls(t, "SetPreference", 2)
	store.AssertExpectations(t)
}

func TestSetErrorKeepsCache(t *testing.T) {
	ctx := context.Background()
	store := new(mockStore)
	store.On("ListPreferences", mock.Anything).Return([]db.Preference{}, nil)
	store.On("SetPreference", mock.Anything, mock.Anything).Return(errors.New("locked"))

	p, err := Load(ctx, store)
	require.NoError(t, err)

	err = p.Set(ctx, KeyPlayer, "bob")
	assert.ErrorContains(t, err, "locked")
	_, ok := p.Get(KeyPlayer)
	assert.False(t, ok)
}
