// wordgen drafts a word list with an LLM and writes it as JSON. Pass an
// existing list with --merge to extend it instead of starting fresh.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/samber/lo"

	"github.com/typeflow/typeflow/internal/anthropic"
	"github.com/typeflow/typeflow/internal/google"
	"github.com/typeflow/typeflow/internal/llm"
	"github.com/typeflow/typeflow/internal/logger"
	"github.com/typeflow/typeflow/internal/wordgen"
	"github.com/typeflow/typeflow/internal/words"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("typeflow-wordgen")
	var (
		llmProvider     = fs.StringEnumLong("llm-provider", "LLM provider", "anthropic", "google")
		llmModel        = fs.StringLong("llm-model", "", "LLM model name (defaults per provider)")
		anthropicAPIKey = fs.StringLong("anthropic-api-key", "", "Anthropic API key")
		googleAPIKey    = fs.StringLong("google-api-key", "", "Google API key")
		themes          = fs.StringLong("themes", "food,animals,travel,weather,school", "Comma-separated list of themes")
		count           = fs.IntLong("count", 20, "Words to request per theme")
		parallel        = fs.IntLong("parallel", 3, "Concurrent LLM requests")
		merge           = fs.StringLong("merge", "", "Existing word list to extend")
		out             = fs.StringLong("out", "words.json", "Output file (- for stdout)")
		timeout         = fs.DurationLong("timeout", 5*time.Minute, "Overall timeout")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	themeList := lo.Compact(lo.Map(strings.Split(*themes, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	if len(themeList) == 0 {
		return errors.New("at least one theme is required")
	}
	if *count <= 0 {
		return errors.New("count must be positive")
	}

	log := logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client, err := newLLMClient(ctx, llm.Provider(*llmProvider), *llmModel, *anthropicAPIKey, *googleAPIKey)
	if err != nil {
		return err
	}

	var existing words.List
	if *merge != "" {
		existing, err = words.LoadFile(*merge, log)
		if err != nil {
			return err
		}
	}

	gen := wordgen.NewGenerator(llm.Timed(llm.Provider(*llmProvider), client), log)
	gen.Parallel = *parallel

	generated, err := gen.Generate(ctx, themeList, *count)
	if err != nil {
		return fmt.Errorf("generating words: %w", err)
	}

	list := lo.UniqBy(append(existing, generated...), func(w words.Word) string { return w.Text })
	log.InfoContext(ctx, "word list ready", "generated", len(generated), "total", len(list))

	if *out == "-" {
		return list.Write(os.Stdout)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := list.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newLLMClient(ctx context.Context, provider llm.Provider, model, anthropicKey, googleKey string) (llm.Client, error) {
	switch provider {
	case llm.ProviderAnthropic:
		if anthropicKey == "" {
			return nil, errors.New("anthropic-api-key is required when using anthropic provider")
		}
		return anthropic.NewClient(anthropicKey, anthropic.Model(model)), nil
	case llm.ProviderGoogle:
		if googleKey == "" {
			return nil, errors.New("google-api-key is required when using google provider")
		}
		client, err := google.NewClient(ctx, googleKey, google.Model(model))
		if err != nil {
			return nil, fmt.Errorf("creating Google client: %w", err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", provider)
}
