package app

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobuilding/internal/nav"
	"github.com/philipparndt/gobuilding/pkg/geometry"
	"github.com/philipparndt/gobuilding/version"
)

const (
	fontSize12 = float32(12)
	fontSize14 = float32(14)
	fontSize16 = float32(16)
	fontSize18 = float32(18)
	lineHeight = float32(20)

	dialogWidth     = float32(360)
	dialogRowHeight = float32(28)
)

// notify queues an informational toast
func (app *App) notify(text string) {
	app.UI.toasts = append(app.UI.toasts, toast{text: text, until: time.Now().Add(app.cfg.Notify.Duration)})
}

// notifyError logs err and queues an error toast
func (app *App) notifyError(text string, err error) {
	app.log.Error().Err(err).Msg(text)
	app.UI.toasts = append(app.UI.toasts, toast{
		text:    fmt.Sprintf("%s: %v", text, err),
		isError: true,
		until:   time.Now().Add(app.cfg.Notify.Duration),
	})
}

// PromptTarget opens the target selection dialog for a new link at point.
func (app *App) PromptTarget(point geometry.Vector3, done func(target string, ok bool)) {
	if len(app.targets) == 0 {
		app.notify("No link targets configured")
		done("", false)
		return
	}
	app.UI.dialog = DialogState{
		open:     true,
		point:    point,
		options:  app.targets,
		hovered:  -1,
		selected: 0,
		done:     done,
	}
}

func (app *App) closeDialog(target string, ok bool) {
	done := app.UI.dialog.done
	app.UI.dialog = DialogState{}
	if done != nil {
		done(target, ok)
	}
}

func (app *App) dialogRow(i int) rl.Rectangle {
	x, y := app.dialogOrigin()
	return rl.Rectangle{X: x + 10, Y: y + 40 + float32(i)*dialogRowHeight, Width: dialogWidth - 20, Height: dialogRowHeight - 4}
}

func (app *App) dialogOrigin() (float32, float32) {
	height := 60 + float32(len(app.UI.dialog.options))*dialogRowHeight
	return (float32(rl.GetScreenWidth()) - dialogWidth) / 2, (float32(rl.GetScreenHeight()) - height) / 2
}

func (app *App) handleDialogInput() {
	d := &app.UI.dialog

	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		app.closeDialog("", false)
		return
	case rl.IsKeyPressed(rl.KeyDown):
		d.selected = (d.selected + 1) % len(d.options)
	case rl.IsKeyPressed(rl.KeyUp):
		d.selected = (d.selected + len(d.options) - 1) % len(d.options)
	case rl.IsKeyPressed(rl.KeyEnter):
		app.closeDialog(d.options[d.selected], true)
		return
	}

	mouse := rl.GetMousePosition()
	d.hovered = -1
	for i := range d.options {
		if rl.CheckCollisionPointRec(mouse, app.dialogRow(i)) {
			d.hovered = i
		}
	}
	if d.hovered >= 0 && rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.closeDialog(d.options[d.hovered], true)
	}
}

// drawUI draws the user interface
func (app *App) drawUI() {
	app.drawHUD()
	app.drawLoading()
	app.drawToasts()
	if app.UI.dialog.open {
		app.drawDialog()
	}

	// Version and FPS in bottom-left corner
	bottomY := float32(rl.GetScreenHeight()) - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	app.text(versionText, 10, bottomY, fontSize12, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	app.text(fpsText, 10+versionWidth+15, bottomY, fontSize12, rl.Lime)
}

func (app *App) text(s string, x, y, size float32, color rl.Color) {
	rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, size, 1, color)
}

func (app *App) drawHUD() {
	y := float32(10)
	current := app.machine.CurrentObject()

	app.text("Location:", 10, y, fontSize16, rl.Yellow)
	y += lineHeight
	app.text("  "+strings.Join(app.machine.History(), " > "), 10, y, fontSize14, rl.White)
	y += lineHeight
	app.text(fmt.Sprintf("  Links here: %d (total %d)", len(app.store.LinksFor(current)), app.store.Count()), 10, y, fontSize14, rl.White)
	y += lineHeight * 2

	if label := modeLabel(app.machine.Mode.Get()); label != "" {
		app.text(label, 10, y, fontSize16, rl.Orange)
		y += lineHeight
		app.text("  ESC: Cancel", 10, y, fontSize14, rl.LightGray)
		y += lineHeight * 2
	}

	app.text("Links:", 10, y, fontSize16, rl.Yellow)
	y += lineHeight
	app.text("  L: Add link | R: Remove link | Shift+C: Remove all", 10, y, fontSize14, rl.LightGray)
	y += lineHeight
	app.text("  Click marker: Follow link", 10, y, fontSize14, rl.LightGray)
	y += lineHeight * 2

	app.text("Navigate:", 10, y, fontSize16, rl.Yellow)
	y += lineHeight
	if current != nav.Building {
		app.text("  Backspace: Back | Home: Building", 10, y, fontSize14, rl.LightGray)
		y += lineHeight
	}
	app.text("  Left Drag: Rotate | Shift+Drag: Pan | Wheel: Zoom", 10, y, fontSize14, rl.LightGray)
	y += lineHeight
	app.text("  W: Wireframe | F: Fill | D: Log camera", 10, y, fontSize14, rl.LightGray)
}

// drawLoading draws a spinner in the top-right corner while loading
func (app *App) drawLoading() {
	if !app.machine.IsLoading() {
		return
	}

	elapsed := time.Since(app.UI.loadingSince).Seconds()
	spinnerChars := []string{"|", "/", "-", "\\"}
	spinnerIdx := int(elapsed*10) % len(spinnerChars)
	loadingText := fmt.Sprintf("%s Loading %s (%.1fs)", spinnerChars[spinnerIdx], app.machine.CurrentObject(), elapsed)

	screenWidth := float32(rl.GetScreenWidth())
	textSize := rl.MeasureTextEx(app.UI.font, loadingText, fontSize18, 1)
	boxWidth := textSize.X + 40
	boxHeight := float32(40)
	boxX := screenWidth - boxWidth - 20
	boxY := float32(20)

	rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)
	app.text(loadingText, boxX+20, boxY+(boxHeight-textSize.Y)/2, fontSize18, rl.Yellow)
}

// drawToasts draws pending notifications bottom-right and drops expired ones
func (app *App) drawToasts() {
	now := time.Now()
	live := app.UI.toasts[:0]
	for _, t := range app.UI.toasts {
		if now.Before(t.until) {
			live = append(live, t)
		}
	}
	app.UI.toasts = live

	screenWidth := float32(rl.GetScreenWidth())
	y := float32(rl.GetScreenHeight()) - 60
	for i := len(live) - 1; i >= 0; i-- {
		t := live[i]
		color := rl.NewColor(144, 238, 144, 255)
		if t.isError {
			color = rl.NewColor(255, 100, 100, 255)
		}

		textSize := rl.MeasureTextEx(app.UI.font, t.text, fontSize14, 1)
		boxWidth := textSize.X + 20
		boxX := screenWidth - boxWidth - 20
		rl.DrawRectangle(int32(boxX), int32(y), int32(boxWidth), 30, rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLines(int32(boxX), int32(y), int32(boxWidth), 30, color)
		app.text(t.text, boxX+10, y+8, fontSize14, color)
		y -= 36
	}
}

func (app *App) drawDialog() {
	d := app.UI.dialog
	x, y := app.dialogOrigin()
	height := 60 + float32(len(d.options))*dialogRowHeight

	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), rl.NewColor(0, 0, 0, 120))
	rl.DrawRectangle(int32(x), int32(y), int32(dialogWidth), int32(height), rl.NewColor(25, 28, 38, 240))
	rl.DrawRectangleLines(int32(x), int32(y), int32(dialogWidth), int32(height), rl.Yellow)
	app.text("Link target at "+d.point.String(), x+10, y+12, fontSize16, rl.Yellow)

	for i, option := range d.options {
		row := app.dialogRow(i)
		if i == d.hovered || i == d.selected {
			rl.DrawRectangleRec(row, rl.NewColor(60, 70, 100, 255))
		}
		app.text(option, row.X+8, row.Y+5, fontSize14, rl.White)
	}
	app.text("Enter: Confirm | ESC: Cancel", x+10, y+height-18, fontSize12, rl.LightGray)
}
