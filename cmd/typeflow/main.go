// typeflow is the terminal typing game. Results and preferences are stored
// in SQLite by default, or in PostgreSQL when DATABASE_URL is a postgres:// URL.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/typeflow/typeflow/internal/envsetup"
	"github.com/typeflow/typeflow/internal/logger"
	"github.com/typeflow/typeflow/internal/prefs"
	"github.com/typeflow/typeflow/internal/store"
	"github.com/typeflow/typeflow/internal/tui"
	"github.com/typeflow/typeflow/internal/words"
)

const defaultWordCount = 10

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	if envsetup.NeedsSetup() {
		completed, err := envsetup.Run()
		if err != nil {
			return fmt.Errorf("running setup wizard: %w", err)
		}
		if !completed {
			return errors.New("setup cancelled")
		}
	}
	_ = godotenv.Load()

	fs := ff.NewFlagSet("typeflow")
	var (
		databaseURL = fs.StringLong("database-url", store.DefaultPath, "SQLite path or PostgreSQL URL for results")
		wordsFile   = fs.StringLong("words", "", "JSON word list (defaults to the built-in list)")
		wordCount   = fs.IntLong("word-count", 0, "Words per game (0 uses the saved preference)")
		player      = fs.StringLong("player", "", "Name results are saved under")
		minimal     = fs.BoolLong("minimal", "Start in minimal mode")
		logFile     = fs.StringLong("log-file", "typeflow.log", "File to write logs to")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	// The terminal UI owns stdout.
	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	log := logger.InitWriter(f)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := store.Open(ctx, *databaseURL)
	if err != nil {
		return err
	}
	defer repo.Close()

	settings, err := prefs.Load(ctx, repo)
	if err != nil {
		return err
	}

	list, err := loadWords(*wordsFile, log)
	if err != nil {
		return err
	}

	count := *wordCount
	if count > 0 {
		if err := settings.SetInt(ctx, prefs.KeyWordCount, count); err != nil {
			log.WarnContext(ctx, "saving word count", "error", err)
		}
	} else {
		count = settings.Int(prefs.KeyWordCount, defaultWordCount)
	}

	name := *player
	if name != "" {
		if err := settings.Set(ctx, prefs.KeyPlayer, name); err != nil {
			log.WarnContext(ctx, "saving player", "error", err)
		}
	} else {
		name = settings.String(prefs.KeyPlayer, defaultPlayer())
	}

	if *minimal {
		if err := settings.SetBool(ctx, prefs.KeyMinimalMode, true); err != nil {
			log.WarnContext(ctx, "saving minimal mode", "error", err)
		}
	}

	log.Info("starting game", "player", name, "words", len(list), "word_count", count)
	return tui.Run(tui.Config{
		Words:     list,
		WordCount: count,
		Player:    name,
		Settings:  settings,
		Results:   repo,
		Log:       log,
	})
}

func loadWords(path string, log *slog.Logger) (words.List, error) {
	if path == "" {
		return words.Default(log)
	}
	return words.LoadFile(path, log)
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player-" + strconv.Itoa(os.Getpid())
}
