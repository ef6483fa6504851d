package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/philipparndt/gobuilding/internal/loader"
	"github.com/philipparndt/gobuilding/internal/nav"
	"github.com/philipparndt/gobuilding/pkg/openscad"
	"github.com/philipparndt/gobuilding/pkg/watcher"
)

// loadBuilding decodes and uploads the building synchronously at startup
func (app *App) loadBuilding() error {
	path, err := app.loader.Resolve(nav.Building)
	if err != nil {
		return err
	}
	asset, err := loader.Decode(context.Background(), nav.Building, path)
	if err != nil {
		return err
	}
	app.replaceBuilding(asset)
	return nil
}

func (app *App) replaceBuilding(asset *loader.Asset) {
	old := app.Scene.building
	app.Scene.building = uploadAsset(asset, app.cfg.Assets.BuildingScale)
	old.unload()
	app.log.Info().Str("asset", asset.Path).Msg("building loaded")
}

// Navigate follows a link to target.
func (app *App) Navigate(target string) {
	app.metrics.Navigated("link")
	app.show(app.machine.NavigateTo(target))
}

func (app *App) goBack() {
	req, ok := app.machine.GoBack()
	if !ok {
		return
	}
	app.metrics.Navigated("back")
	app.show(req)
}

func (app *App) resetToBuilding() {
	app.metrics.Navigated("reset")
	app.show(app.machine.ResetToBuilding())
}

// show brings the scene in line with a navigation request. The building
// is always resident; anything else is loaded in the background.
func (app *App) show(req nav.Request) {
	app.machine.ExitToIdle()

	if req.Target == nav.Building {
		app.Scene.floor.unload()
		app.Scene.floor = nil
		app.machine.Resolve(req.Generation, nil)
		app.syncMarkers()
		app.resetCamera()
		return
	}

	app.SetLoadingState(true)
	app.loader.Load(req)
}

// SetLoadingState flips the loading flag and remembers when loading began
func (app *App) SetLoadingState(loading bool) {
	if loading && !app.machine.IsLoading() {
		app.UI.loadingSince = time.Now()
	}
	app.machine.SetLoading(loading)
}

// applyLoadResult installs a finished load (must be called on main thread)
func (app *App) applyLoadResult(r loader.Result) {
	// Building reloads are not tied to a navigation
	if r.Request.Target == nav.Building && r.Request.Generation == 0 {
		if r.Err != nil {
			app.notifyError("Failed to reload building", r.Err)
			return
		}
		app.replaceBuilding(r.Asset)
		return
	}

	// Upload before resolving so the floor is in place when markers appear
	var floor *sceneModel
	if r.Err == nil && app.machine.IsCurrent(r.Request.Generation) {
		floor = uploadAsset(r.Asset, 1)
	}

	switch app.machine.Resolve(r.Request.Generation, r.Err) {
	case nav.Discard:
		app.metrics.LoadDiscarded()
		app.log.Debug().Str("target", r.Request.Target).Uint64("generation", r.Request.Generation).Msg("discarding stale load")
	case nav.Fail:
		if !errors.Is(r.Err, context.Canceled) {
			app.notifyError(fmt.Sprintf("Failed to load %s", r.Request.Target), r.Err)
		}
	case nav.Apply:
		old := app.Scene.floor
		app.Scene.floor = floor
		old.unload()
		app.fitCamera(floor.bounds)
		app.log.Info().Str("target", r.Request.Target).Dur("elapsed", r.Elapsed).Msg("asset loaded")
	}
}

// syncMarkers shows the markers of the current object once the scene
// displays it and hides all markers otherwise.
func (app *App) syncMarkers() {
	if !app.machine.Ready() {
		app.store.HideMarkers()
		return
	}
	app.store.ShowMarkersFor(app.machine.CurrentObject())
}

// setupFileWatcher reloads the building or the shown floor when its file changes
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(app.cfg.Watch.Debounce, app.log.With().Str("component", "watcher").Logger())
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	callback := func(changedFile string) {
		select {
		case app.changed <- changedFile:
		default:
		}
	}

	if err := fw.WatchDir(app.loader.Dir(), callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch assets: %w", err)
	}

	fw.Start()
	app.watcher = fw
	app.log.Info().Str("dir", app.loader.Dir()).Msg("watching assets for changes")
	return nil
}

func (app *App) drainFileChanges() {
	for {
		select {
		case file := <-app.changed:
			app.reloadChanged(file)
		default:
			return
		}
	}
}

func (app *App) reloadChanged(file string) {
	if app.isAsset(nav.Building, file) {
		app.log.Info().Str("file", file).Msg("building changed, reloading")
		app.loader.LoadBuilding()
		return
	}

	current := app.machine.CurrentObject()
	if current != nav.Building && app.isAsset(current, file) {
		app.log.Info().Str("file", file).Msg("asset changed, reloading")
		app.SetLoadingState(true)
		app.loader.Load(app.machine.Refresh())
	}
}

// isAsset reports whether file is the asset behind target or, for
// OpenSCAD sources, one of the files it includes.
func (app *App) isAsset(target, file string) bool {
	path, err := app.loader.Resolve(target)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if abs == file {
		return true
	}

	if format, err := loader.FormatOf(abs); err != nil || format != loader.FormatSCAD {
		return false
	}
	deps, err := openscad.NewRenderer(filepath.Dir(abs)).ResolveDependencies(abs)
	if err != nil {
		return false
	}
	return slices.Contains(deps, file)
}

func (app *App) unloadScene() {
	app.Scene.floor.unload()
	app.Scene.building.unload()
}
