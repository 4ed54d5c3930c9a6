package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/config"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/export"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/render"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/scene"
	"github.com/Thefantasticbagle/opengl-raytracing-engine/internal/ui"
)

func main() {
	scenePath := flag.String("scene", "", "path to scene JSON file (empty = built-in default scene)")
	configPath := flag.String("config", "", "path to render TOML config")
	vertPath := flag.String("vert", "", "path to vertex shader (.vert), replaces the embedded one")
	fragPath := flag.String("frag", "", "path to fragment shader (.frag), replaces the embedded one")
	watch := flag.Bool("watch", false, "hot-reload -vert/-frag shaders on change")
	headless := flag.Bool("headless", false, "render without UI and save PNG")
	output := flag.String("out", "output.png", "output PNG file for headless render")
	thumb := flag.Int("thumb", 0, "also write a thumbnail with this max dimension (headless)")
	upload := flag.String("upload", "", "S3 key to upload the headless render to (uses S3_* env)")
	width := flag.Int("width", 0, "output width (overrides config)")
	height := flag.Int("height", 0, "output height (overrides config)")
	passes := flag.Int("passes", 0, "accumulation passes (overrides config)")

	flag.Parse()

	cfg, err := config.LoadRender(*configPath)
	if err != nil {
		log.Fatalln("config:", err)
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *passes > 0 {
		cfg.Passes = *passes
	}

	var sc *scene.Scene
	if *scenePath != "" {
		sc, err = scene.Load(*scenePath)
		if err != nil {
			log.Fatalln("scene:", err)
		}
	} else {
		sc = scene.Default()
	}
	log.Printf("scene %q: %d spheres, %dx%d, %d passes", sc.Name, len(sc.Spheres), cfg.Width, cfg.Height, cfg.Passes)

	settings := scene.ConvertSettings(sc.Settings)
	// Конфиг и env перекрывают значения из файла сцены.
	if cfg.MaxBounces > 0 {
		settings.MaxBounces = uint32(cfg.MaxBounces)
	}
	if cfg.RaysPerFrag > 0 {
		settings.RaysPerFrag = uint32(cfg.RaysPerFrag)
	}
	if cfg.DivergeStrength > 0 {
		settings.DivergeStrength = float32(cfg.DivergeStrength)
	}

	renderCfg := render.Config{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Passes:    cfg.Passes,
		Settings:  settings,
		VertPath:  *vertPath,
		FragPath:  *fragPath,
		HotReload: *watch,
	}

	if *headless {
		if err := renderHeadless(sc, renderCfg, *output, *thumb, *upload); err != nil {
			log.Println("headless render error:", err)
			os.Exit(1)
		}
		return
	}

	if err := ui.Run(sc, renderCfg); err != nil {
		log.Println("ui error:", err)
		os.Exit(1)
	}
}

func renderHeadless(sc *scene.Scene, cfg render.Config, outPath string, thumbDim int, uploadKey string) error {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))

	logEvery := cfg.Passes / 10
	if logEvery < 1 {
		logEvery = 1
	}
	err := render.Render(sc, cfg, img, func(pass int) {
		if pass%logEvery == 0 || pass == cfg.Passes {
			log.Printf("pass %d/%d", pass, cfg.Passes)
		}
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := export.SavePNG(outPath, img); err != nil {
		return err
	}
	log.Println("saved", outPath)

	if thumbDim > 0 {
		thumbPath := outPath + ".thumb.png"
		if err := export.SavePNG(thumbPath, export.Thumbnail(img, thumbDim)); err != nil {
			return err
		}
		log.Println("saved", thumbPath)
	}

	if uploadKey != "" {
		if err := export.UploadPNG(export.S3ConfigFromEnv(), uploadKey, img); err != nil {
			return err
		}
	}
	return nil
}
