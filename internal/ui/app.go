// Package ui is the interactive preview: a Fyne window showing the
// progressively accumulating GPU render, with controls for the
// raytracing settings.
package ui

import (
	"fmt"
	"image"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/export"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/render"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/scene"
)

// Run opens the preview window for the given scene and blocks until it
// is closed.
func Run(sc *scene.Scene, renderCfg render.Config) error {
	a := app.New()
	w := a.NewWindow("OpenGL Raytracing Engine")

	img := image.NewRGBA(image.Rect(0, 0, renderCfg.Width, renderCfg.Height))
	imgCanvas := canvas.NewImageFromImage(img)
	imgCanvas.FillMode = canvas.ImageFillContain

	// Окно предпросмотра ограничиваем разумным максимумом, чтобы
	// большое логическое разрешение не ломало UI.
	aspect := float32(renderCfg.Width) / float32(renderCfg.Height)
	displayW := float32(1024)
	displayH := displayW / aspect
	if displayH > 768 {
		displayH = 768
		displayW = displayH * aspect
	}
	imgCanvas.SetMinSize(fyne.NewSize(displayW, displayH))

	status := widget.NewLabel("Idle")

	settings := renderCfg.Settings

	bounceLabel := widget.NewLabel(fmt.Sprintf("Max bounces: %d", settings.MaxBounces))
	bounceSlider := widget.NewSlider(1, 32)
	bounceSlider.Step = 1
	bounceSlider.Value = float64(settings.MaxBounces)
	bounceSlider.OnChanged = func(v float64) {
		settings.MaxBounces = uint32(v)
		bounceLabel.SetText(fmt.Sprintf("Max bounces: %d", settings.MaxBounces))
	}

	raysLabel := widget.NewLabel(fmt.Sprintf("Rays per fragment: %d", settings.RaysPerFrag))
	raysSlider := widget.NewSlider(1, 32)
	raysSlider.Step = 1
	raysSlider.Value = float64(settings.RaysPerFrag)
	raysSlider.OnChanged = func(v float64) {
		settings.RaysPerFrag = uint32(v)
		raysLabel.SetText(fmt.Sprintf("Rays per fragment: %d", settings.RaysPerFrag))
	}

	divergeLabel := widget.NewLabel(fmt.Sprintf("Diverge strength: %.4f", settings.DivergeStrength))
	divergeSlider := widget.NewSlider(0, 0.05)
	divergeSlider.Step = 0.0005
	divergeSlider.Value = float64(settings.DivergeStrength)
	divergeSlider.OnChanged = func(v float64) {
		settings.DivergeStrength = float32(v)
		divergeLabel.SetText(fmt.Sprintf("Diverge strength: %.4f", settings.DivergeStrength))
	}

	var mu sync.Mutex
	rendering := false

	var renderBtn *widget.Button
	renderBtn = widget.NewButton("Render", func() {
		mu.Lock()
		if rendering {
			mu.Unlock()
			return
		}
		rendering = true
		mu.Unlock()
		renderBtn.Disable()

		rcfg := renderCfg
		rcfg.Settings = settings

		go func() {
			err := render.Render(sc, rcfg, img, func(pass int) {
				status.SetText(fmt.Sprintf("Rendering... pass %d/%d", pass, rcfg.Passes))
				imgCanvas.Refresh()
			})

			mu.Lock()
			rendering = false
			mu.Unlock()
			renderBtn.Enable()
			if err != nil {
				log.Printf("render error: %v", err)
				status.SetText(fmt.Sprintf("Error: %v", err))
				return
			}
			imgCanvas.Refresh()
			status.SetText("Done")
		}()
	})

	saveBtn := widget.NewButton("Save PNG", func() {
		mu.Lock()
		busy := rendering
		mu.Unlock()
		if busy {
			status.SetText("Still rendering")
			return
		}
		if err := export.SavePNG("output.png", img); err != nil {
			log.Printf("save error: %v", err)
			status.SetText(fmt.Sprintf("Error: %v", err))
			return
		}
		status.SetText("Saved output.png")
	})

	controls := container.NewVBox(
		widget.NewLabel("Raytracing settings"),
		bounceLabel, bounceSlider,
		raysLabel, raysSlider,
		divergeLabel, divergeSlider,
		renderBtn,
		saveBtn,
		status,
	)

	w.SetContent(container.NewBorder(nil, nil, nil, controls, imgCanvas))
	w.ShowAndRun()
	return nil
}
