package app

import (
	"fmt"
	"log"
	"time"

	"github.com/philipparndt/geoplane/pkg/meshio"
	"github.com/philipparndt/geoplane/pkg/watcher"
)

// setupFileWatcher watches the mesh file and, for OpenSCAD sources, every
// file it includes
func (app *App) setupFileWatcher() error {
	// Create file watcher with 500ms debounce
	fw, err := watcher.New(500 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	files, err := meshio.Dependencies(app.state.Path)
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	if err := fw.Watch(files); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	log.Printf("watching %d file(s) for changes", len(files))
	for _, f := range files {
		log.Printf("  - %s", f)
	}

	fw.Start()
	app.FileWatch.watcher = fw
	return nil
}

// checkReload reloads the mesh after a watched file changed. Loading runs on
// the render goroutine so GPU resources are only touched from there.
func (app *App) checkReload() {
	if app.FileWatch.watcher == nil {
		return
	}
	changed, ok := app.FileWatch.watcher.Poll()
	if !ok {
		return
	}

	log.Printf("file changed: %s", changed)
	start := time.Now()

	_, g, err := meshio.Load(app.state.Path)
	if err != nil {
		app.Error(fmt.Sprintf("Reload failed: %v", err))
		return
	}

	app.clearQuantities()
	app.setModel(g, false)
	log.Printf("model reloaded in %.2fs", time.Since(start).Seconds())

	// Failures are reported through the notifier
	_ = app.state.ReplaceMesh(g)

	// Includes of an OpenSCAD file may have changed
	if files, err := meshio.Dependencies(app.state.Path); err == nil {
		if err := app.FileWatch.watcher.Replace(files); err != nil {
			log.Printf("warning: failed to update watched files: %v", err)
		}
	}
}
