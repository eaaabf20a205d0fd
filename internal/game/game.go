// Package game holds the state of one typing session: the word queue, the
// keystrokes typed so far for the current word, and the running counters
// used for the results screen.
package game

import (
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/typeflow/typeflow/internal/romaji"
	"github.com/typeflow/typeflow/internal/words"
)

// Outcome is what a single keystroke did to the session.
type Outcome int

const (
	// Ignored keys are not romaji input (empty, control, or after the game ended).
	Ignored Outcome = iota
	// Rejected keys cannot continue any spelling of the current word.
	Rejected
	// Accepted keys extend the input without finishing the word.
	Accepted
	// WordComplete means the key finished the current word and another follows.
	WordComplete
	// GameComplete means the key finished the last word.
	GameComplete
)

func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Accepted:
		return "accepted"
	case WordComplete:
		return "word_complete"
	case GameComplete:
		return "game_complete"
	default:
		return "ignored"
	}
}

// State is one session. It is not safe for concurrent use.
type State struct {
	Words            []words.Word
	CurrentWordIndex int
	CurrentInput     string
	TotalKeystrokes  int
	Mistakes         int
	Skipped          int
	StartedAt        time.Time
	FinishedAt       time.Time

	now       func() time.Time
	alignment romaji.Alignment
}

// Option configures a State.
type Option func(*State)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// New starts a session over ws. The clock starts on the first keystroke.
func New(ws []words.Word, opts ...Option) *State {
	s := &State{Words: ws, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.align()
	return s
}

func (s *State) align() {
	if w, ok := s.Current(); ok {
		s.alignment = romaji.NewAlignment(w.Romaji)
	} else {
		s.alignment = romaji.Alignment{}
	}
}

// Current returns the word being typed. ok is false once the game is finished.
func (s *State) Current() (words.Word, bool) {
	if s.CurrentWordIndex >= len(s.Words) {
		return words.Word{}, false
	}
	return s.Words[s.CurrentWordIndex], true
}

// Finished reports whether every word has been typed or skipped.
func (s *State) Finished() bool {
	return s.CurrentWordIndex >= len(s.Words)
}

// Display is the kunrei-shiki prompt for the current word.
func (s *State) Display() string {
	return s.alignment.Display()
}

// Parts splits the current prompt into typed and remaining text.
func (s *State) Parts() romaji.Parts {
	return s.alignment.Parts(s.CurrentInput)
}

// Progress returns the number of chunks typed and the total for the current word.
func (s *State) Progress() (done, total int) {
	return s.alignment.Completed(s.CurrentInput), s.alignment.Len()
}

// Type feeds one key. Keys may arrive full-width when an IME is active and are
// folded to ASCII first. Every non-ignored key counts toward TotalKeystrokes.
func (s *State) Type(key string) Outcome {
	key = strings.ToLower(width.Fold.String(key))
	if s.Finished() || !isInputKey(key) {
		return Ignored
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = s.now()
	}
	s.TotalKeystrokes++

	typed := s.CurrentInput + key
	if !s.alignment.Accepts(typed) {
		s.Mistakes++
		return Rejected
	}
	s.CurrentInput = typed

	if !s.alignment.Complete(typed) {
		return Accepted
	}
	s.advance()
	if s.Finished() {
		return GameComplete
	}
	return WordComplete
}

// Backspace removes the last typed key of the current word.
func (s *State) Backspace() {
	if s.CurrentInput == "" {
		return
	}
	s.CurrentInput = s.CurrentInput[:len(s.CurrentInput)-1]
}

// Skip abandons the current word and moves to the next.
func (s *State) Skip() {
	if s.Finished() {
		return
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = s.now()
	}
	s.Skipped++
	s.advance()
}

func (s *State) advance() {
	s.CurrentWordIndex++
	s.CurrentInput = ""
	if s.Finished() {
		s.FinishedAt = s.now()
	}
	s.align()
}

// Reset restarts the session over ws.
func (s *State) Reset(ws []words.Word) {
	*s = State{Words: ws, now: s.now}
	s.align()
}

func isInputKey(key string) bool {
	return len(key) == 1 && romaji.IsKey(key[0])
}
