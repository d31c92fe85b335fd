// render writes a single frame of the configured view to a png file.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"time"

	mandel "github.com/marben/mandel_viewer"
	"github.com/marben/mandel_viewer/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a toml config file")
	output := flag.String("o", "", "output file, overrides the config")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *output != "" {
		cfg.Output = *output
	}

	vp, err := cfg.Viewport()
	if err != nil {
		return err
	}

	start := time.Now()
	img := mandel.NewImage(cfg.Width, cfg.Height, vp)
	img.Render(cfg.Fractal(), vp)
	log.Printf("rendered %dx%d at %.6f%+.6fi scale %g in %s", cfg.Width, cfg.Height, real(vp.Center), imag(vp.Center), vp.Scale, time.Since(start))

	return save(cfg.Output, img)
}

func save(filename string, img *mandel.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img.RGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", filename, err)
	}

	log.Printf("rendered image saved to %q", filename)
	return nil
}
