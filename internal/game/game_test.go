package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeflow/typeflow/internal/words"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestState(t *testing.T, romaji ...string) (*State, *fakeClock) {
	t.Helper()
	ws := make([]words.Word, len(romaji))
	for i, r := range romaji {
		ws[i] = words.Word{Text: r, Reading: r, Romaji: r}
	}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(ws, WithClock(clock.now)), clock
}

func typeAll(s *State, keys string) []Outcome {
	out := make([]Outcome, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.Type(string(k)))
	}
	return out
}

func TestTypeWord(t *testing.T) {
	s, _ := newTestState(t, "neko", "inu")

	assert.Equal(t, "neko", s.Display())
	assert.Equal(t, []Outcome{Accepted, Accepted, Accepted, WordComplete}, typeAll(s, "neko"))
	assert.Equal(t, 1, s.CurrentWordIndex)
	assert.Empty(t, s.CurrentInput)
	assert.Equal(t, "inu", s.Display())

	assert.Equal(t, []Outcome{Accepted, Accepted, GameComplete}, typeAll(s, "inu"))
	assert.True(t, s.Finished())
	assert.Equal(t, 7, s.TotalKeystrokes)
	assert.Equal(t, 0, s.Mistakes)
}

func TestTypeRejected(t *testing.T) {
	s, _ := newTestState(t, "neko")

	assert.Equal(t, Accepted, s.Type("n"))
	assert.Equal(t, Rejected, s.Type("x"))
	assert.Equal(t, "n", s.CurrentInput, "rejected keys are not appended")
	assert.Equal(t, 2, s.TotalKeystrokes)
	assert.Equal(t, 1, s.Mistakes)
}

func TestTypeVariantSpelling(t *testing.T) {
	s, _ := newTestState(t, "shashin")

	assert.Equal(t, "syasin", s.Display())
	typeAll(s, "sya")
	assert.Equal(t, "sya", s.Parts().Input)
	assert.Equal(t, "sin", s.Parts().Remaining)

	// a final single n already spells ん
	out := typeAll(s, "sin")
	assert.Equal(t, []Outcome{Accepted, Accepted, GameComplete}, out)
	assert.Equal(t, 0, s.Mistakes)
}

func TestTypeFullWidth(t *testing.T) {
	s, _ := newTestState(t, "inu")

	assert.Equal(t, Accepted, s.Type("ｉ"))
	assert.Equal(t, Accepted, s.Type("Ｎ"))
	assert.Equal(t, GameComplete, s.Type("u"))
}

func TestTypeIgnored(t *testing.T) {
	s, _ := newTestState(t, "inu")

	for _, key := range []string{"", "ctrl+a", "1", " ", "enter"} {
		assert.Equal(t, Ignored, s.Type(key), "key %q", key)
	}
	assert.Zero(t, s.TotalKeystrokes)
	assert.True(t, s.StartedAt.IsZero())

	typeAll(s, "inu")
	assert.Equal(t, Ignored, s.Type("a"), "keys after the game are ignored")
}

func TestBackspace(t *testing.T) {
	s, _ := newTestState(t, "neko")

	s.Backspace()
	assert.Empty(t, s.CurrentInput)

	typeAll(s, "nek")
	s.Backspace()
	assert.Equal(t, "ne", s.CurrentInput)
	assert.Equal(t, "ne", s.Parts().Input)
	done, total := s.Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
}

func TestSkip(t *testing.T) {
	s, _ := newTestState(t, "neko", "inu")

	s.Type("n")
	s.Skip()
	assert.Equal(t, 1, s.CurrentWordIndex)
	assert.Empty(t, s.CurrentInput)
	assert.Equal(t, 1, s.Skipped)

	s.Skip()
	assert.True(t, s.Finished())
	s.Skip()
	assert.Equal(t, 2, s.Skipped)

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, s.Display())
	assert.Equal(t, Ignored, s.Type("a"))
}

func TestResult(t *testing.T) {
	s, clock := newTestState(t, "neko", "inu")

	s.Type("n")
	clock.advance(30 * time.Second)
	typeAll(s, "exko")
	s.Skip()

	r := s.Result("alice")
	assert.Equal(t, "alice", r.Player)
	assert.Equal(t, 1, r.Words)
	assert.Equal(t, 5, r.Keystrokes)
	assert.Equal(t, 1, r.Mistakes)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 30*time.Second, r.Duration)
	assert.InDelta(t, 8.0, r.KPM(), 1e-9)
	assert.InDelta(t, 0.8, r.Accuracy(), 1e-9)
}

func TestResultEmpty(t *testing.T) {
	s, _ := newTestState(t, "neko")

	r := s.Result("bob")
	assert.Zero(t, r.Duration)
	assert.Zero(t, r.KPM())
	assert.Equal(t, 1.0, r.Accuracy())
}

func TestReset(t *testing.T) {
	s, _ := newTestState(t, "neko")
	typeAll(s, "nexko")
	require.True(t, s.Finished())

	s.Reset([]words.Word{{Text: "犬", Reading: "いぬ", Romaji: "inu"}})
	assert.False(t, s.Finished())
	assert.Zero(t, s.TotalKeystrokes)
	assert.Zero(t, s.Mistakes)
	assert.Equal(t, "inu", s.Display())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "word_complete", WordComplete.String())
	assert.Equal(t, "ignored", Outcome(99).String())
}

func TestResultCreateParams(t *testing.T) {
	r := Result{Player: "alice", Words: 3, Keystrokes: 50, Mistakes: 5, Duration: 30 * time.Second}

	p := r.CreateParams()
	assert.Equal(t, "alice", p.Player)
	assert.Equal(t, int32(3), p.Words)
	assert.Equal(t, int64(30_000), p.DurationMs)
	assert.InDelta(t, 90.0, p.Kpm, 1e-9)
	assert.InDelta(t, 0.9, p.Accuracy, 1e-9)
}
