// Package app is the raylib viewer: it owns the window, uploads assets,
// and feeds pointer and keyboard input into the link and navigation core.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobuilding/internal/config"
	"github.com/philipparndt/gobuilding/internal/interact"
	"github.com/philipparndt/gobuilding/internal/kv"
	"github.com/philipparndt/gobuilding/internal/links"
	"github.com/philipparndt/gobuilding/internal/loader"
	"github.com/philipparndt/gobuilding/internal/logging"
	"github.com/philipparndt/gobuilding/internal/metrics"
	"github.com/philipparndt/gobuilding/internal/nav"
	"github.com/philipparndt/gobuilding/pkg/watcher"
	"github.com/rs/zerolog"
)

// ErrRendererNotReady is returned when interactivity is set up before the
// window exists.
var ErrRendererNotReady = errors.New("renderer not ready")

type App struct {
	Camera      CameraState
	Scene       SceneState
	View        ViewSettings
	Interaction InteractionState
	UI          UIState

	cfg        *config.Config
	log        zerolog.Logger
	store      *links.Store
	machine    *nav.Machine
	dispatcher *interact.Dispatcher
	loader     *loader.Loader
	metrics    *metrics.Metrics
	watcher    *watcher.FileWatcher
	changed    chan string
	targets    []string
}

// Run opens the viewer window and blocks until it is closed.
func Run(cfg *config.Config, log zerolog.Logger) error {
	backend, err := kv.Open(kv.Config{Type: cfg.Store.Type, Path: cfg.Store.Path})
	if err != nil {
		return fmt.Errorf("failed to open link store: %w", err)
	}
	defer backend.Close()

	provider, out, err := newMetricsProvider(cfg.Metrics)
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to flush metrics")
		}
		out.Close()
	}()

	m, err := metrics.New()
	if err != nil {
		return err
	}

	app := &App{
		cfg:     cfg,
		log:     log,
		machine: nav.NewMachine(),
		metrics: m,
		changed: make(chan string, 16),
		View:    ViewSettings{showFilled: true},
	}
	app.store = links.NewStore(backend, logging.Component(log, "links"),
		links.WithMarkerRadius(cfg.Marker.Radius),
		links.WithSpin(cfg.Marker.Spin))
	app.loader = loader.New(cfg.Assets.Dir, cfg.Assets.Building, logging.Component(log, "loader"))
	app.loader.SetRecorder(m)
	defer app.loader.Close()

	if err := app.store.Load(); err != nil {
		log.Error().Err(err).Msg("failed to load links")
	}

	app.targets = cfg.Assets.Targets
	if len(app.targets) == 0 {
		if app.targets, err = loader.ScanTargets(cfg.Assets.Dir, cfg.Assets.Building); err != nil {
			log.Warn().Err(err).Msg("no link targets available")
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(cfg.Window.FPS)
	rl.SetExitKey(0) // Esc cancels modes and dialogs

	app.UI.font = rl.GetFontDefault()
	app.resetCamera()
	app.subscribe()

	if err := app.setupInteractivity(); err != nil {
		app.notifyError("Interaction unavailable", err)
	}

	if err := app.loadBuilding(); err != nil {
		app.notifyError("Failed to load building", err)
	}
	app.syncMarkers()

	if cfg.Watch.Enabled {
		if err := app.setupFileWatcher(); err != nil {
			log.Warn().Err(err).Msg("auto-reload will not be available")
		} else {
			defer app.watcher.Close()
		}
	}

	app.loop()

	app.unloadScene()
	return nil
}

// newMetricsProvider exports metrics to cfg.File, or stderr, when enabled.
// The returned file is closed after the provider is shut down.
func newMetricsProvider(cfg config.MetricsConfig) (*metrics.Provider, io.Closer, error) {
	var out io.WriteCloser = nopCloser{os.Stderr}
	if cfg.Enabled && cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open metrics file: %w", err)
		}
		out = f
	}
	p, err := metrics.NewProvider(metrics.ProviderConfig{
		Enabled:     cfg.Enabled,
		ServiceName: "gobuilding",
		Interval:    cfg.Interval,
		Writer:      out,
	})
	if err != nil {
		out.Close()
		return nil, nil, err
	}
	return p, out, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// setupInteractivity wires pointer input into the dispatcher. It fails when
// the window does not exist yet and is not retried.
func (app *App) setupInteractivity() error {
	if !rl.IsWindowReady() {
		return ErrRendererNotReady
	}

	app.dispatcher = interact.New(app.store, app.machine, app, app, app,
		logging.Component(app.log, "interact"),
		interact.WithRecorder(app.metrics),
		interact.WithErrorHandler(func(err error) { app.notifyError("Failed to save links", err) }))
	app.Interaction.ready = true
	return nil
}

// subscribe keeps marker visibility in step with loading: markers
// disappear when a load starts and the current object's markers appear
// once its load is applied. A failed load keeps them hidden.
func (app *App) subscribe() {
	app.machine.Mode.Subscribe(func(mode nav.Mode) {
		app.log.Debug().Stringer("mode", mode).Msg("mode changed")
	})
	app.machine.Loading.Subscribe(func(bool) {
		app.syncMarkers()
	})
	app.machine.Current.Subscribe(func(object string) {
		app.log.Info().Str("object", object).Int("depth", app.machine.Depth()).Msg("navigated")
	})
}

func (app *App) loop() {
	for !rl.WindowShouldClose() {
		app.drainFileChanges()

		// Apply loaded assets (must be on main thread)
		for {
			result, ok := app.loader.Poll()
			if !ok {
				break
			}
			app.applyLoadResult(result)
		}

		app.handleInput()
		app.updateCamera()
		app.store.Tick(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		app.drawScene()
		app.drawMarkers()
		rl.EndMode3D()

		app.drawUI()

		rl.EndDrawing()
	}
}
