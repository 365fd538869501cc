// Command sisu-hud-headless runs the overlay without a window. Settings are
// kept in SQLite and every rendered panel is written to the log.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sisuhud/sisu-hud/internal/config"
	"github.com/sisuhud/sisu-hud/internal/hud"
	"github.com/sisuhud/sisu-hud/internal/layout"
	"github.com/sisuhud/sisu-hud/internal/logging"
	"github.com/sisuhud/sisu-hud/internal/model"
	"github.com/sisuhud/sisu-hud/internal/platform"
	"github.com/sisuhud/sisu-hud/internal/storage"
	"github.com/sisuhud/sisu-hud/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logging.SetGlobalLogger(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	cancel()

	if err != nil {
		log.Error().Err(err).Msg("Headless HUD stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Headless HUD shutting down gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if err := platform.CreateDirectoryIfNotExists(cfg.DataDir); err != nil {
		return fmt.Errorf("failed to prepare data directory: %w", err)
	}

	store, err := storage.Open(ctx, cfg.DatabasePath(), log)
	if err != nil {
		return fmt.Errorf("failed to open settings database: %w", err)
	}
	defer store.Close()

	settings := config.NewSettings(store, log)
	panel := hud.NewPanel(settings, hud.NewLogSurface(log), hud.Options{
		Layout: layout.Options{
			MinWidth:         cfg.MinWidth,
			MinHeight:        cfg.MinHeight,
			ViewportFraction: cfg.ViewportFraction,
		},
		Viewport: model.Size{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight},
	}, log)
	panel.Refresh()

	log.Info().
		Str("source", cfg.SourceURL).
		Str("database", cfg.DatabasePath()).
		Strs("hidden", hiddenLabels(panel.Fields())).
		Msg("Headless HUD starting")

	throttle := telemetry.NewThrottle(cfg.FPS)
	client := telemetry.NewClient(cfg.SourceURL, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return client.Run(gctx, throttle.Push) })
	g.Go(func() error { return throttle.Run(gctx, panel.HandleSnapshot) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func hiddenLabels(fields []model.FieldDescriptor) []string {
	var labels []string
	for _, f := range fields {
		if !f.Visible {
			labels = append(labels, f.Label)
		}
	}
	return labels
}
