package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/slidegen"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slidegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, slidegen.NewSlideSize(), cfg.SlideSize())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
slide:
  width: 13.333
  height: 7.5
image:
  dpi: 144
log:
  level: debug
  format: json
metrics:
  file: /tmp/slidegen.prom
batch:
  concurrency: 2
`)
	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 144.0, cfg.Image.DPI)
	assert.Equal(t, 800, cfg.Image.FallbackWidth)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/slidegen.prom", cfg.Metrics.File)
	assert.Equal(t, 2, cfg.Batch.Concurrency)

	size := cfg.SlideSize()
	assert.Equal(t, slidegen.SizeCustom, size.Name)
	assert.Equal(t, slidegen.Inch(13.333), size.CX)
	assert.Equal(t, int64(6858000), size.CY)
}

func TestLoadNamedSize(t *testing.T) {
	cfg, err := Load(New(), writeConfig(t, "slide:\n  size: screen16x9\n"))
	require.NoError(t, err)
	assert.Equal(t, slidegen.NamedSlideSize(slidegen.SizeScreen16x9), cfg.SlideSize())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SLIDEGEN_IMAGE_DPI", "300")
	t.Setenv("SLIDEGEN_BATCH_CONCURRENCY", "8")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Image.DPI)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
}

func TestBindFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("dpi", 96, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--dpi", "72", "--log-level", "warn"}))

	v := New()
	require.NoError(t, BindFlags(v, flags, map[string]string{
		"dpi":       "image.dpi",
		"log-level": "log.level",
		"absent":    "slide.size",
	}))
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 72.0, cfg.Image.DPI)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Slide.Width = 10
	cfg.Image.DPI = 0
	cfg.Batch.Concurrency = 0
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"set together", "image.dpi", "batch.concurrency", "log.format"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Image.DPI = 72
	assert.Len(t, cfg.Options(nil), 4)
}
