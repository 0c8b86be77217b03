package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/tatianab/escape-room/internal/config"
	"github.com/tatianab/escape-room/internal/engine"
	"github.com/tatianab/escape-room/internal/i18n"
	"github.com/tatianab/escape-room/internal/models"
	"github.com/tatianab/escape-room/internal/runner"
	"github.com/tatianab/escape-room/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	interactive := !cfg.Headless && term.IsTerminal(int(os.Stdin.Fd()))

	logger, closeLog, err := newLogger(cfg, interactive)
	if err != nil {
		fmt.Printf("Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	room, err := models.LoadRoom(cfg.RoomFile)
	if err != nil {
		fmt.Printf("Error loading room: %v\n", err)
		os.Exit(1)
	}
	catalog, err := i18n.Load(cfg.Locale)
	if err != nil {
		fmt.Printf("Error loading messages: %v\n", err)
		os.Exit(1)
	}

	var narrator engine.Narrator
	if cfg.NarratorEnabled() {
		gemini, err := engine.NewGeminiNarrator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			fmt.Printf("Error creating narrator: %v\n", err)
			os.Exit(1)
		}
		defer gemini.Close()
		narrator = gemini
	}

	newEngine := func() (*engine.Engine, error) {
		return engine.NewEngine(room, engine.Options{
			TimeLimit: cfg.TimeLimit,
			Catalog:   catalog,
			Narrator:  narrator,
			Logger:    logger,
		})
	}

	logger.Info("starting", "room", room.Title, "locale", cfg.Locale, "interactive", interactive, "narrator", cfg.NarratorEnabled())

	if interactive {
		err = tui.Run(newEngine)
	} else {
		r := runner.New(newEngine, os.Stdout, runner.Options{Logger: logger})
		err = r.Run(ctx, runner.Lines(ctx, os.Stdin))
	}
	if err != nil && ctx.Err() == nil {
		fmt.Printf("Error running game: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to a file while the TUI owns the screen and to stderr
// otherwise.
func newLogger(cfg *config.Config, interactive bool) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if !interactive {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}
	f, err := tea.LogToFile(cfg.LogFile, "escape-room")
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
}
