// Package wordgen drafts word lists with an LLM. The model supplies the
// written form and kana reading; romaji is always derived locally so that
// every generated word can be typed.
package wordgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/typeflow/typeflow/internal/llm"
	"github.com/typeflow/typeflow/internal/metrics"
	"github.com/typeflow/typeflow/internal/romaji"
	"github.com/typeflow/typeflow/internal/transliteration"
	"github.com/typeflow/typeflow/internal/words"
)

// ErrNoWords is returned when no usable word came back for any theme.
var ErrNoWords = errors.New("no usable words generated")

type Generator struct {
	llm llm.Client
	log *slog.Logger

	// Parallel caps concurrent LLM requests.
	Parallel int
}

func NewGenerator(client llm.Client, log *slog.Logger) *Generator {
	return &Generator{llm: client, log: log, Parallel: 3}
}

type candidate struct {
	Text    string `json:"text"`
	Reading string `json:"reading"`
}

const systemPrompt = `You are writing vocabulary lists for a Japanese typing game.

For each word, provide:
1. The word as it is normally written (kanji, kana, or a mix)
2. Its reading in hiragana only, or katakana for loanwords

Use common, everyday words. Do not include romaji. Respond ONLY with a JSON array, no other text. Example:
[
  {"text": "猫", "reading": "ねこ"},
  {"text": "ラーメン", "reading": "らーめん"}
]`

// Generate asks for count words per theme, one request per theme, and merges
// the answers. Words without a kana reading and duplicates are dropped. A
// failing theme is logged and skipped unless every theme fails.
func (g *Generator) Generate(ctx context.Context, themes []string, count int) (words.List, error) {
	if len(themes) == 0 || count <= 0 {
		return nil, ErrNoWords
	}

	var (
		mu      sync.Mutex
		batches = make([][]words.Word, len(themes))
		errs    []error
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.Parallel, 1))
	for i, theme := range themes {
		eg.Go(func() error {
			batch, err := g.generateTheme(egCtx, theme, count)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				g.log.WarnContext(ctx, "theme failed", "theme", theme, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("theme %q: %w", theme, err))
				mu.Unlock()
				return nil
			}
			batches[i] = batch
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	list := lo.UniqBy(lo.Flatten(batches), func(w words.Word) string { return w.Text })
	if len(list) == 0 {
		return nil, errors.Join(append([]error{ErrNoWords}, errs...)...)
	}
	return list, nil
}

func (g *Generator) generateTheme(ctx context.Context, theme string, count int) ([]words.Word, error) {
	prompt := fmt.Sprintf("Give me %d Japanese words about: %s", count, theme)

	text, err := g.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	if err := json.Unmarshal([]byte(text), &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse word response: %w (response: %s)", err, text)
	}

	out := make([]words.Word, 0, len(candidates))
	for _, c := range candidates {
		w, ok := toWord(c)
		if !ok {
			metrics.WordsGenerated.WithLabelValues("rejected").Inc()
			g.log.DebugContext(ctx, "dropping generated word", "theme", theme, "text", c.Text, "reading", c.Reading)
			continue
		}
		metrics.WordsGenerated.WithLabelValues("accepted").Inc()
		out = append(out, w)
	}
	g.log.InfoContext(ctx, "theme generated", "theme", theme, "requested", count, "accepted", len(out))
	return out, nil
}

func toWord(c candidate) (words.Word, bool) {
	text := strings.TrimSpace(c.Text)
	reading := strings.TrimSpace(c.Reading)
	if text == "" || transliteration.DetectScript(reading) != transliteration.ScriptKana {
		return words.Word{}, false
	}
	r := transliteration.Transliterate(reading)
	if !romaji.Typeable(r) {
		return words.Word{}, false
	}
	return words.Word{Text: text, Reading: reading, Romaji: r}, true
}
