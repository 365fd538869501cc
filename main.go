package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/sisuhud/sisu-hud/internal/config"
	"github.com/sisuhud/sisu-hud/internal/hud"
	"github.com/sisuhud/sisu-hud/internal/layout"
	"github.com/sisuhud/sisu-hud/internal/logging"
	"github.com/sisuhud/sisu-hud/internal/model"
	"github.com/sisuhud/sisu-hud/internal/platform"
	"github.com/sisuhud/sisu-hud/internal/telemetry"
	"github.com/sisuhud/sisu-hud/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.sisuhud.sisu-hud"
	AppName = "Sisu HUD"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logging.SetGlobalLogger(log)
	log.Info().Str("version", version).Str("source", cfg.SourceURL).Msg("Sisu HUD starting")

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(float32(cfg.ViewportWidth), float32(cfg.ViewportHeight)))

	overlay := ui.NewOverlay(myApp, myWindow, ui.Options{
		IconDir: platform.ResolveAssetDir(cfg.AssetDir),
	}, log)

	settings := config.NewSettings(myApp.Preferences(), log)
	panel := hud.NewPanel(settings, overlay, hud.Options{
		Layout: layout.Options{
			MinWidth:         cfg.MinWidth,
			MinHeight:        cfg.MinHeight,
			ViewportFraction: cfg.ViewportFraction,
		},
		Viewport: model.Size{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight},
	}, log)
	overlay.Attach(panel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	throttle := telemetry.NewThrottle(cfg.FPS)
	client := telemetry.NewClient(cfg.SourceURL, log)

	go func() {
		if err := client.Run(ctx, throttle.Push); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Telemetry client stopped")
		}
	}()
	go func() {
		err := throttle.Run(ctx, func(s model.Snapshot) {
			fyne.Do(func() { panel.HandleSnapshot(s) })
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Snapshot delivery stopped")
		}
	}()

	// Show and run
	myWindow.ShowAndRun()
	log.Info().Msg("Sisu HUD stopped")
}
