package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/typeflow/typeflow/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func createResult(t *testing.T, repo *Repository, player string, kpm float64) db.Result {
	t.Helper()
	res, err := repo.CreateResult(context.Background(), db.CreateResultParams{
		Player:     player,
		Words:      10,
		Keystrokes: 120,
		Mistakes:   6,
		DurationMs: 60_000,
		Kpm:        kpm,
		Accuracy:   0.95,
	})
	require.NoError(t, err)
	return res
}

func TestResultCRUD(t *testing.T) {
	repo := newTestRepo(t)
	repo.now = stepClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	res := createResult(t, repo, "alice", 114)
	assert.NotZero(t, res.ID)
	assert.Equal(t, "alice", res.Player)
	assert.Equal(t, int32(120), res.Keystrokes)
	assert.Equal(t, int64(60_000), res.DurationMs)
	assert.InDelta(t, 0.95, res.Accuracy, 1e-9)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC), res.CreatedAt)

	got, err := repo.GetResult(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res, got)

	_, err = repo.GetResult(ctx, 9999)
	assert.True(t, db.IsNoRows(err))
}

func TestListResults(t *testing.T) {
	repo := newTestRepo(t)
	repo.now = stepClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first := createResult(t, repo, "alice", 100)
	second := createResult(t, repo, "bob", 200)
	third := createResult(t, repo, "alice", 150)

	all, err := repo.ListResults(ctx, db.ListResultsParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

	alice, err := repo.ListResults(ctx, db.ListResultsParams{Player: "alice", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, alice, 2)

	page, err := repo.ListResults(ctx, db.ListResultsParams{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, second.ID, page[0].ID)

	count, err := repo.CountResults(ctx, db.CountResultsParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountResults(ctx, db.CountResultsParams{Player: "bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTopResults(t *testing.T) {
	repo := newTestRepo(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = stepClock(start)
	ctx := context.Background()

	slow := createResult(t, repo, "alice", 100)
	fast := createResult(t, repo, "bob", 200)
	mid := createResult(t, repo, "alice", 150)

	top, err := repo.TopResults(ctx, db.TopResultsParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int64{fast.ID, mid.ID, slow.ID}, []int64{top[0].ID, top[1].ID, top[2].ID})

	recent, err := repo.TopResults(ctx, db.TopResultsParams{Limit: 10, Since: start.Add(2 * time.Second)})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, fast.ID, recent[0].ID)

	count, err := repo.CountResults(ctx, db.CountResultsParams{Since: start.Add(2 * time.Second)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	alice, err := repo.TopResults(ctx, db.TopResultsParams{Player: "alice", Limit: 1})
	require.NoError(t, err)
	require.Len(t, alice, 1)
	assert.Equal(t, mid.ID, alice[0].ID)
}

func TestDeleteOldResults(t *testing.T) {
	repo := newTestRepo(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = stepClock(start)
	ctx := context.Background()

	createResult(t, repo, "alice", 100)
	createResult(t, repo, "alice", 100)
	kept := createResult(t, repo, "alice", 100)

	deleted, err := repo.DeleteOldResults(ctx, start.Add(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	all, err := repo.ListResults(ctx, db.ListResultsParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)
}

func TestPreferences(t *testing.T) {
	repo := newTestRepo(t)
	repo.now = stepClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := repo.GetPreference(ctx, "minimal_mode")
	assert.True(t, db.IsNoRows(err))

	p, err := repo.SetPreference(ctx, db.SetPreferenceParams{Key: "minimal_mode", Value: "true"})
	require.NoError(t, err)
	assert.Equal(t, "true", p.Value)
	firstUpdate := p.UpdatedAt

	p, err = repo.SetPreference(ctx, db.SetPreferenceParams{Key: "minimal_mode", Value: "false"})
	require.NoError(t, err)
	assert.Equal(t, "false", p.Value)
	assert.True(t, p.UpdatedAt.After(firstUpdate))

	_, err = repo.SetPreference(ctx, db.SetPreferenceParams{Key: "player", Value: "alice"})
	require.NoError(t, err)

	all, err := repo.ListPreferences(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "minimal_mode", all[0].Key)
	assert.Equal(t, "player", all[1].Key)
}

func TestReopenFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "typeflow.db")

	repo, err := New(ctx, "sqlite://"+path)
	require.NoError(t, err)
	_, err = repo.SetPreference(ctx, db.SetPreferenceParams{Key: "player", Value: "alice"})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = New(ctx, path)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Ping(ctx))
	p, err := repo.GetPreference(ctx, "player")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Value)
}
