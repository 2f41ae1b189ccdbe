// Package app wires configuration, storage, the engine controller, the coach
// and metrics into one running instance.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/tatianab/just-do-now/internal/coach"
	"github.com/tatianab/just-do-now/internal/config"
	"github.com/tatianab/just-do-now/internal/engine"
	"github.com/tatianab/just-do-now/internal/metrics"
	"github.com/tatianab/just-do-now/internal/storage"
)

type App struct {
	Config     *config.Config
	Controller *engine.Controller
	Coach      *coach.Coach
	Metrics    *metrics.Metrics
	Logger     *log.Logger

	store     storage.Store
	generator *coach.GeminiGenerator
}

// New opens the configured store and loads the player state. Without an API
// key the coach runs offline.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := storage.Open(ctx, cfg.Store, cfg.DataDir)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	ctrl, err := engine.NewController(ctx, store,
		engine.WithRecorder(m),
		engine.WithLogger(logger),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a := &App{
		Config:     cfg,
		Controller: ctrl,
		Metrics:    m,
		Logger:     logger,
		store:      store,
	}

	var gen coach.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := coach.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Printf("Warning: coach offline: %v", err)
		} else {
			a.generator = g
			gen = g
		}
	}
	a.Coach = coach.New(gen,
		coach.WithRecorder(m),
		coach.WithLogger(logger),
		coach.WithTimeout(cfg.CoachTimeout),
		coach.WithRateLimit(cfg.CoachRPM, config.CoachBurst),
	)
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	if a.generator != nil {
		errs = append(errs, a.generator.Close())
	}
	errs = append(errs, a.store.Close())
	return errors.Join(errs...)
}
