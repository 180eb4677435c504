package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/decawise/internal/config"
	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/game/question"
	"github.com/palemoky/decawise/internal/logger"
	"github.com/palemoky/decawise/internal/sound"
	"github.com/palemoky/decawise/internal/storage"
	"github.com/palemoky/decawise/internal/ui"
	"github.com/palemoky/decawise/internal/ui/model"
)

// newEngine builds the rules and engine described by cfg around store.
func newEngine(cfg *config.Config, store storage.Store) (*engine.Engine, error) {
	rule, err := engine.ParseWinnerRule(cfg.Game.WinnerRule)
	if err != nil {
		return nil, err
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rules := engine.NewRules(question.LoadOrEmpty(cfg.Game.QuestionsPath), uint64(seed))
	rules.WinnerRule = rule
	return engine.New(rules, store,
		engine.WithResults(store),
		engine.WithTimeout(cfg.Storage.Timeout()),
	), nil
}

func runPlay(ctx context.Context, cfg *config.Config) (err error) {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			err = fmt.Errorf("panic: %v (see %s)", r, logger.GetLogPath())
		}
	}()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.LogError("Error opening %s storage: %v", cfg.Storage.Backend, err)
		return err
	}
	defer func() { _ = store.Close() }()
	logger.LogInfo("Storage: %s (%s codec)", cfg.Storage.Backend, cfg.Storage.Codec)

	e, err := newEngine(cfg, store)
	if err != nil {
		return err
	}

	opts := []model.AppOption{
		model.WithResultHistory(store),
		model.WithPointChoices(cfg.Game.PointChoices, cfg.Game.DefaultPoints),
	}
	if cfg.Sound.Enabled {
		opts = append(opts, model.WithSound(sound.NewSoundManager(cfg.Sound.Dir)))
	}
	app := ui.NewApp(e, opts...)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
