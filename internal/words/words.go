package words

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/typeflow/typeflow/internal/romaji"
	"github.com/typeflow/typeflow/internal/transliteration"
)

//go:embed default.json
var defaultJSON []byte

// ErrEmptyList is returned when a word list has no usable entries.
var ErrEmptyList = errors.New("word list has no usable words")

// Word is one prompt: the word as written, its kana reading, and the
// canonical romaji the player types.
type Word struct {
	Text    string `json:"text" validate:"required"`
	Reading string `json:"reading" validate:"required"`
	Romaji  string `json:"romaji,omitempty" validate:"omitempty,romaji"`
}

// Display is the kunrei-shiki prompt for the word, the same one the game
// aligns keystrokes against.
func (w Word) Display() string {
	return romaji.NewAlignment(w.Romaji).Display()
}

// List is an ordered word list.
type List []Word

type file struct {
	Words []Word `json:"words"`
}

var validate = newValidator()

// romaji fields may only hold keys the game accepts.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("romaji", func(fl validator.FieldLevel) bool {
		return romaji.Typeable(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Load reads a JSON word list. Entries failing validation are skipped;
// missing romaji is derived from the reading.
func Load(r io.Reader, log *slog.Logger) (List, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding word list: %w", err)
	}

	list := lo.FilterMap(f.Words, func(w Word, i int) (Word, bool) {
		w.Text = strings.TrimSpace(w.Text)
		w.Reading = strings.TrimSpace(w.Reading)
		w.Romaji = strings.ToLower(strings.TrimSpace(w.Romaji))
		if err := validate.Struct(w); err != nil {
			log.Warn("skipping invalid word", "index", i, "text", w.Text, "error", err)
			return Word{}, false
		}
		if w.Romaji == "" {
			w.Romaji = transliteration.Transliterate(w.Reading)
			if !romaji.Typeable(w.Romaji) {
				log.Warn("skipping word without romaji", "index", i, "text", w.Text, "reading", w.Reading)
				return Word{}, false
			}
			log.Debug("derived romaji from reading", "text", w.Text, "romaji", w.Romaji)
		}
		return w, true
	})
	list = lo.UniqBy(list, func(w Word) string { return w.Text + "\x00" + w.Romaji })

	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return list, nil
}

// LoadFile reads a word list from path.
func LoadFile(path string, log *slog.Logger) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()

	list, err := Load(f, log)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return list, nil
}

// Default returns the built-in word list.
func Default(log *slog.Logger) (List, error) {
	return Load(strings.NewReader(string(defaultJSON)), log)
}

// Pick returns up to n distinct words in random order. n <= 0 returns all of them.
func (l List) Pick(n int, rnd *rand.Rand) List {
	if n <= 0 || n > len(l) {
		n = len(l)
	}
	return lo.Map(rnd.Perm(len(l))[:n], func(idx int, _ int) Word {
		return l[idx]
	})
}

// Write encodes the list in the same format Load reads.
func (l List) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(file{Words: l})
}
