// Package config loads the settings shared by the viewer and the render command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	mandel "github.com/marben/mandel_viewer"
)

var (
	ErrInvalid       = errors.New("invalid config")
	ErrUnknownRegion = errors.New("unknown region")
)

type Config struct {
	// Addr is the http listen address of the viewer.
	Addr string `toml:"addr"`
	// Static is the directory served at / by the viewer.
	Static string `toml:"static"`

	MaxIter uint32 `toml:"max_iter"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`

	// Region names one of mandel.Landmarks. When set it overrides the centre and scale.
	Region   string  `toml:"region"`
	CenterRe float64 `toml:"center_re"`
	CenterIm float64 `toml:"center_im"`
	Scale    float64 `toml:"scale"`

	ZoomIn  float64 `toml:"zoom_in"`
	ZoomOut float64 `toml:"zoom_out"`

	// Output is the png file written by the render command.
	Output string `toml:"output"`
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		Static:   "./static",
		MaxIter:  256,
		Width:    800,
		Height:   600,
		CenterRe: real(mandel.DefaultViewport.Center),
		CenterIm: imag(mandel.DefaultViewport.Center),
		Scale:    mandel.DefaultViewport.Scale,
		ZoomIn:   0.9,
		ZoomOut:  1.1,
		Output:   "mandel.png",
	}
}

// Load reads a toml file over the defaults. Keys the Config does not know are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.MaxIter == 0:
		return fmt.Errorf("%w: max_iter must be positive", ErrInvalid)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case !(c.Scale > 0):
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalid, c.Scale)
	case !(c.ZoomIn > 0 && c.ZoomIn < 1):
		return fmt.Errorf("%w: zoom_in must be in (0, 1), got %v", ErrInvalid, c.ZoomIn)
	case !(c.ZoomOut > 1):
		return fmt.Errorf("%w: zoom_out must be greater than 1, got %v", ErrInvalid, c.ZoomOut)
	}
	if c.Region != "" {
		if _, ok := mandel.Landmarks[c.Region]; !ok {
			return fmt.Errorf("%w %q, known: %s", ErrUnknownRegion, c.Region, strings.Join(regionNames(), ", "))
		}
	}
	return nil
}

// Viewport returns the initial viewport for a Width×Height frame.
func (c Config) Viewport() (mandel.Viewport, error) {
	if c.Region == "" {
		return mandel.Viewport{Center: complex(c.CenterRe, c.CenterIm), Scale: c.Scale}, nil
	}
	r, ok := mandel.Landmarks[c.Region]
	if !ok {
		return mandel.Viewport{}, fmt.Errorf("%w %q", ErrUnknownRegion, c.Region)
	}
	return r.Viewport(c.Width, c.Height), nil
}

func (c Config) Fractal() mandel.Fractal {
	return mandel.Mandelbrot{Iter: c.MaxIter}
}

func regionNames() []string {
	names := make([]string, 0, len(mandel.Landmarks))
	for name := range mandel.Landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
