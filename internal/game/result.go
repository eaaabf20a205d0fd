package game

import (
	"time"

	"github.com/typeflow/typeflow/internal/db"
)

// Result summarizes a finished (or abandoned) session.
type Result struct {
	Player     string        `json:"player" validate:"required,max=32"`
	Words      int           `json:"words" validate:"gte=0"`
	Keystrokes int           `json:"keystrokes" validate:"gte=0"`
	Mistakes   int           `json:"mistakes" validate:"gte=0,ltefield=Keystrokes"`
	Skipped    int           `json:"skipped" validate:"gte=0"`
	Duration   time.Duration `json:"duration" validate:"gte=0"`
}

// KPM is correct keystrokes per minute.
func (r Result) KPM() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Keystrokes-r.Mistakes) / r.Duration.Minutes()
}

// Accuracy is the fraction of keystrokes that were accepted, in [0, 1].
func (r Result) Accuracy() float64 {
	if r.Keystrokes == 0 {
		return 1
	}
	return float64(r.Keystrokes-r.Mistakes) / float64(r.Keystrokes)
}

// Result reports the session so far. An unfinished session is measured up to now.
func (s *State) Result(player string) Result {
	end := s.FinishedAt
	if end.IsZero() {
		end = s.now()
	}
	var d time.Duration
	if !s.StartedAt.IsZero() {
		d = end.Sub(s.StartedAt)
	}
	return Result{
		Player:     player,
		Words:      s.CurrentWordIndex - s.Skipped,
		Keystrokes: s.TotalKeystrokes,
		Mistakes:   s.Mistakes,
		Skipped:    s.Skipped,
		Duration:   d,
	}
}

// CreateParams converts the summary into repository parameters.
func (r Result) CreateParams() db.CreateResultParams {
	return db.CreateResultParams{
		Player:     r.Player,
		Words:      int32(r.Words),
		Keystrokes: int32(r.Keystrokes),
		Mistakes:   int32(r.Mistakes),
		Skipped:    int32(r.Skipped),
		DurationMs: r.Duration.Milliseconds(),
		Kpm:        r.KPM(),
		Accuracy:   r.Accuracy(),
	}
}
