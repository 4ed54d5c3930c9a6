package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRenderDefaults(t *testing.T) {
	cfg, err := LoadRender("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRender().Width, cfg.Width)
	assert.Equal(t, DefaultRender().Passes, cfg.Passes)
}

func TestLoadRenderTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
width = 1920
height = 1080
passes = 128
max_bounces = 12
diverge_strength = 0.01
`), 0o644))

	cfg, err := LoadRender(path)
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.Equal(t, 128, cfg.Passes)
	assert.Equal(t, 12, cfg.MaxBounces)
	assert.InDelta(t, 0.01, cfg.DivergeStrength, 1e-9)
}

func TestLoadRenderInvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = -1\n"), 0o644))

	_, err := LoadRender(path)
	assert.ErrorContains(t, err, "invalid output size")
}

func TestLoadRenderMissingFile(t *testing.T) {
	_, err := LoadRender(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "read config")
}

func TestEnvOverrides(t *testing.T) {
	// Env читается один раз; для теста сбрасываем Once.
	envOnce = sync.Once{}
	envCfg = envOverrides{}
	t.Cleanup(func() {
		envOnce = sync.Once{}
		envCfg = envOverrides{}
	})

	t.Setenv("RAYTRACER_MAX_BOUNCES", "20")
	t.Setenv("RAYTRACER_RAYS_PER_FRAG", "not a number")
	t.Setenv("RAYTRACER_DIVERGE_STRENGTH", "0.05")

	cfg, err := LoadRender("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.MaxBounces)
	assert.Zero(t, cfg.RaysPerFrag, "garbage value must be ignored")
	assert.InDelta(t, 0.05, cfg.DivergeStrength, 1e-9)
}
