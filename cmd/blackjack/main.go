package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/blackjack/internal/config"
	"github.com/jask/blackjack/internal/database"
	"github.com/jask/blackjack/internal/database/repository"
	"github.com/jask/blackjack/internal/save"
	"github.com/jask/blackjack/internal/session"
	"github.com/jask/blackjack/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	rounds := repository.NewRoundRepo(db)

	store, err := save.NewStore(cfg.Saves.Dir, logger)
	if err != nil {
		log.Fatalf("save store: %v", err)
	}

	preferred, err := save.ParseFormat(cfg.Saves.PreferredFormat)
	if err != nil {
		log.Printf("warn: unknown preferred format %q, falling back to JSON", cfg.Saves.PreferredFormat)
		preferred = save.FormatJSON
	}

	controller := session.New(store, preferred)
	controller.Archive = rounds
	controller.Log = logger
	controller.PersistFormat = func(f save.Format) error {
		cfg.Saves.PreferredFormat = string(f)
		return config.Save(cfg)
	}

	p := tea.NewProgram(tui.New(ctx, cfg, controller, rounds), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
