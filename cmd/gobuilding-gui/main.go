package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gobuilding/internal/config"
	"github.com/philipparndt/gobuilding/internal/kv"
	"github.com/philipparndt/gobuilding/internal/links"
	"github.com/philipparndt/gobuilding/internal/logging"
)

// App is the link inspector: objects on the left, their links on the right.
type App struct {
	window  fyne.Window
	store   *links.Store
	objects []string
	object  string
	link    int

	objectList *widget.List
	linkList   *widget.List
	status     *widget.Label
}

func main() {
	configDir := flag.String("config", ".", "Directory containing "+config.FileName)
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	backend, err := kv.Open(kv.Config{Type: cfg.Store.Type, Path: cfg.Store.Path})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open link store: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	log := logging.New(cfg.LogLevel, os.Stderr)

	a := app.New()
	w := a.NewWindow("GoBuilding - Link Inspector")

	appInstance := &App{
		window: w,
		store:  links.NewStore(backend, logging.Component(log, "links")),
		link:   -1,
	}
	appInstance.setupMainUI()
	appInstance.reload()

	w.Resize(fyne.NewSize(900, 600))
	w.ShowAndRun()
}

func (a *App) setupMainUI() {
	a.status = widget.NewLabel("")

	a.objectList = widget.NewList(
		func() int { return len(a.objects) },
		func() fyne.CanvasObject { return widget.NewLabel("object") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			object := a.objects[id]
			item.(*widget.Label).SetText(fmt.Sprintf("%s (%d)", object, len(a.store.LinksFor(object))))
		},
	)
	a.objectList.OnSelected = func(id widget.ListItemID) {
		a.object = a.objects[id]
		a.link = -1
		a.linkList.UnselectAll()
		a.linkList.Refresh()
	}

	a.linkList = widget.NewList(
		func() int { return len(a.store.LinksFor(a.object)) },
		func() fyne.CanvasObject { return widget.NewLabel("link") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			list := a.store.LinksFor(a.object)
			if id >= len(list) {
				return
			}
			item.(*widget.Label).SetText(fmt.Sprintf("[%d] %s -> %s", id, list[id].Position, list[id].Target))
		},
	)
	a.linkList.OnSelected = func(id widget.ListItemID) { a.link = id }

	removeButton := widget.NewButton("Remove Link", a.removeSelected)
	clearButton := widget.NewButton("Remove All", func() {
		dialog.ShowConfirm("Remove all links",
			fmt.Sprintf("Delete all %d links?", a.store.Count()),
			func(ok bool) {
				if ok {
					a.removeAll()
				}
			}, a.window)
	})
	reloadButton := widget.NewButton("Reload", a.reload)

	toolbar := container.NewHBox(reloadButton, removeButton, clearButton)
	split := container.NewHSplit(a.objectList, a.linkList)
	split.SetOffset(0.35)

	a.window.SetContent(container.NewBorder(toolbar, a.status, nil, nil, split))
}

func (a *App) reload() {
	if err := a.store.Load(); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.refresh()
}

func (a *App) refresh() {
	a.objects = a.store.Objects()
	a.link = -1
	a.objectList.UnselectAll()
	a.objectList.Refresh()
	a.linkList.UnselectAll()
	a.linkList.Refresh()
	a.status.SetText(fmt.Sprintf("%d links on %d objects", a.store.Count(), len(a.objects)))
}

func (a *App) removeSelected() {
	if a.link < 0 {
		return
	}
	if _, err := a.store.RemoveLink(a.link, a.object); err != nil {
		dialog.ShowError(fmt.Errorf("failed to remove link: %w", err), a.window)
	}
	a.refresh()
}

func (a *App) removeAll() {
	if _, err := a.store.RemoveAll(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to remove links: %w", err), a.window)
	}
	a.object = ""
	a.refresh()
}
