// Package config resolves render configuration from an optional TOML
// file plus environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Render is the tool-level configuration: output geometry and the
// raytracing overrides applied on top of whatever the scene file says.
type Render struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Passes int `toml:"passes"` // accumulation passes per render

	// Zero means "use the scene's value".
	MaxBounces      int     `toml:"max_bounces"`
	RaysPerFrag     int     `toml:"rays_per_frag"`
	DivergeStrength float64 `toml:"diverge_strength"`
}

// DefaultRender returns the configuration used when no file is given.
func DefaultRender() Render {
	return Render{
		Width:  800,
		Height: 600,
		Passes: 64,
	}
}

// LoadRender reads a TOML config file and applies environment
// overrides. An empty path yields the defaults (still with overrides).
func LoadRender(path string) (Render, error) {
	cfg := DefaultRender()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config: invalid output size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Passes <= 0 {
		cfg.Passes = 1
	}
	return cfg, nil
}

type envOverrides struct {
	maxBounces      int
	raysPerFrag     int
	divergeStrength float64
}

var (
	envOnce sync.Once
	envCfg  envOverrides
)

// readEnv parses the override variables once.
// RAYTRACER_MAX_BOUNCES, RAYTRACER_RAYS_PER_FRAG: positive integers.
// RAYTRACER_DIVERGE_STRENGTH: positive float.
func readEnv() envOverrides {
	envOnce.Do(func() {
		if v := os.Getenv("RAYTRACER_MAX_BOUNCES"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				envCfg.maxBounces = n
			}
		}
		if v := os.Getenv("RAYTRACER_RAYS_PER_FRAG"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				envCfg.raysPerFrag = n
			}
		}
		if v := os.Getenv("RAYTRACER_DIVERGE_STRENGTH"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
				envCfg.divergeStrength = f
			}
		}
	})
	return envCfg
}

func applyEnv(cfg *Render) {
	env := readEnv()
	if env.maxBounces > 0 {
		cfg.MaxBounces = env.maxBounces
	}
	if env.raysPerFrag > 0 {
		cfg.RaysPerFrag = env.raysPerFrag
	}
	if env.divergeStrength > 0 {
		cfg.DivergeStrength = env.divergeStrength
	}
}
