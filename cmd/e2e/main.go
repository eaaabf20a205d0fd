// e2e drives the whole stack against a live LLM: it generates a word list,
// plays every word through the game engine, submits the result to the API
// over HTTP, and checks that it comes back on the leaderboard.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/typeflow/typeflow/internal/anthropic"
	"github.com/typeflow/typeflow/internal/db/sqlite"
	"github.com/typeflow/typeflow/internal/game"
	"github.com/typeflow/typeflow/internal/google"
	"github.com/typeflow/typeflow/internal/llm"
	"github.com/typeflow/typeflow/internal/logger"
	"github.com/typeflow/typeflow/internal/web"
	"github.com/typeflow/typeflow/internal/wordgen"
	"github.com/typeflow/typeflow/internal/words"
)

const player = "e2e"

func main() {
	if err := run(); err != nil {
		slog.Error("E2E FAILED", "error", err)
		os.Exit(1)
	}
	slog.Info("E2E PASSED")
}

func run() error {
	_ = godotenv.Load()

	llmProvider := requireEnv("LLM_PROVIDER")
	llmModel := os.Getenv("LLM_MODEL")

	log := logger.Init()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	// Phase 1: temp database and API server
	log.Info("Phase 1: Setting up DB and API...")
	dir, err := os.MkdirTemp("", "typeflow-e2e-")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	repo, err := sqlite.New(ctx, filepath.Join(dir, "e2e.db"))
	if err != nil {
		return fmt.Errorf("creating temp SQLite: %w", err)
	}
	defer repo.Close()

	var llmClient llm.Client
	switch llmProvider {
	case "anthropic":
		llmClient = anthropic.NewClient(requireEnv("ANTHROPIC_API_KEY"), anthropic.Model(llmModel))
	case "google":
		llmClient, err = google.NewClient(ctx, requireEnv("GOOGLE_API_KEY"), google.Model(llmModel))
		if err != nil {
			return fmt.Errorf("creating Google client: %w", err)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s", llmProvider)
	}

	// Phase 2: generate words
	log.Info("Phase 2: Generating words...", "provider", llmProvider)
	gen := wordgen.NewGenerator(llm.Timed(llm.Provider(llmProvider), llmClient), log)
	list, err := gen.Generate(ctx, []string{"food", "animals"}, 5)
	if err != nil {
		return fmt.Errorf("generating words: %w", err)
	}
	log.Info("generated words", "count", len(list))

	server := httptest.NewServer(web.NewRouter(repo, log, list).Handler(ctx))
	defer server.Close()

	// Phase 3: play every word with its canonical spelling
	log.Info("Phase 3: Playing...")
	result, err := play(list)
	if err != nil {
		return err
	}
	log.Info("game finished", "words", result.Words, "keystrokes", result.Keystrokes, "kpm", result.KPM())

	// Phase 4: submit and read back
	log.Info("Phase 4: Submitting result...")
	body, err := json.Marshal(map[string]any{
		"player":      result.Player,
		"words":       result.Words,
		"keystrokes":  result.Keystrokes,
		"mistakes":    result.Mistakes,
		"skipped":     result.Skipped,
		"duration_ms": result.Duration.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}

	var created struct {
		ID  int64   `json:"id"`
		Kpm float64 `json:"kpm"`
	}
	if err := doJSON(ctx, http.MethodPost, server.URL+"/api/v1/results", body, http.StatusCreated, &created); err != nil {
		return fmt.Errorf("submitting result: %w", err)
	}
	log.Info("result created", "id", created.ID, "kpm", created.Kpm)

	var top struct {
		Data []struct {
			ID     int64  `json:"id"`
			Player string `json:"player"`
		} `json:"data"`
	}
	if err := doJSON(ctx, http.MethodGet, server.URL+"/api/v1/results?sort=top&player="+player, nil, http.StatusOK, &top); err != nil {
		return fmt.Errorf("listing results: %w", err)
	}
	if len(top.Data) != 1 || top.Data[0].ID != created.ID {
		return fmt.Errorf("leaderboard has unexpected entries: %+v", top.Data)
	}

	// Phase 5: display endpoint agrees with the engine
	log.Info("Phase 5: Checking display split...")
	w := list[0]
	body, _ = json.Marshal(map[string]string{"romaji": w.Romaji, "typed": w.Romaji})
	var split struct {
		Remaining string `json:"remaining"`
		Complete  bool   `json:"complete"`
	}
	if err := doJSON(ctx, http.MethodPost, server.URL+"/api/v1/display", body, http.StatusOK, &split); err != nil {
		return fmt.Errorf("splitting display: %w", err)
	}
	if !split.Complete || split.Remaining != "" {
		return fmt.Errorf("display split for %q: complete=%v remaining=%q", w.Romaji, split.Complete, split.Remaining)
	}

	log.Info("all verifications passed", "result_id", created.ID, "words", len(list))
	return nil
}

// play types every word key by key on a clock that advances 250ms per key.
func play(list words.List) (game.Result, error) {
	now := time.Now()
	state := game.New(list, game.WithClock(func() time.Time { return now }))
	for !state.Finished() {
		w, _ := state.Current()
		for _, r := range w.Romaji {
			now = now.Add(250 * time.Millisecond)
			if out := state.Type(string(r)); out == game.Rejected || out == game.Ignored {
				return game.Result{}, fmt.Errorf("key %q of %q was %s", r, w.Romaji, out)
			}
		}
	}
	return state.Result(player), nil
}

func doJSON(ctx context.Context, method, url string, body []byte, wantStatus int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s: status %d, want %d", method, url, resp.StatusCode, wantStatus)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		slog.Error("required environment variable not set", "key", key)
		os.Exit(1)
	}
	return val
}
