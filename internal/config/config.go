// Package config loads slidegen settings from a config file, the
// environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/VantageDataChat/slidegen"
)

const (
	// FileName is the config file name searched for without extension.
	FileName = "slidegen"
	// EnvPrefix prefixes environment overrides, e.g. SLIDEGEN_IMAGE_DPI.
	EnvPrefix = "SLIDEGEN"
)

// Config holds every setting the commands read.
type Config struct {
	Slide   SlideConfig   `mapstructure:"slide"`
	Image   ImageConfig   `mapstructure:"image"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// SlideConfig selects the slide size. A non-zero Width and Height (inches)
// take precedence over Size.
type SlideConfig struct {
	Size   string  `mapstructure:"size"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// ImageConfig controls how pixels map to slide units.
type ImageConfig struct {
	DPI            float64 `mapstructure:"dpi"`
	FallbackWidth  int     `mapstructure:"fallback_width"`
	FallbackHeight int     `mapstructure:"fallback_height"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig names the Prometheus textfile written after each command.
// An empty File disables the export.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Slide: SlideConfig{Size: slidegen.SizeScreen4x3},
		Image: ImageConfig{
			DPI:            slidegen.DefaultDPI,
			FallbackWidth:  800,
			FallbackHeight: 600,
		},
		Log:   LogConfig{Level: "info", Format: "text"},
		Batch: BatchConfig{Concurrency: 4},
	}
}

// New returns a viper instance carrying the defaults, the search paths and
// the environment binding.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("slide.size", d.Slide.Size)
	v.SetDefault("slide.width", d.Slide.Width)
	v.SetDefault("slide.height", d.Slide.Height)
	v.SetDefault("image.dpi", d.Image.DPI)
	v.SetDefault("image.fallback_width", d.Image.FallbackWidth)
	v.SetDefault("image.fallback_height", d.Image.FallbackHeight)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.file", d.Metrics.File)
	v.SetDefault("batch.concurrency", d.Batch.Concurrency)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/slidegen")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds command line flags to config keys. Flags missing from
// the set are ignored.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := flags.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads file, or the first slidegen.yaml on the search path when file
// is empty, and decodes the merged settings. A missing default config file
// is not an error; a missing explicit one is.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []string
	if (c.Slide.Width > 0) != (c.Slide.Height > 0) {
		errs = append(errs, "slide.width and slide.height must be set together")
	}
	if c.Slide.Width < 0 || c.Slide.Height < 0 {
		errs = append(errs, "slide dimensions must be positive")
	}
	if c.Image.DPI <= 0 {
		errs = append(errs, fmt.Sprintf("image.dpi must be positive, got %v", c.Image.DPI))
	}
	if c.Image.FallbackWidth <= 0 || c.Image.FallbackHeight <= 0 {
		errs = append(errs, "image fallback size must be positive")
	}
	if c.Batch.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("batch.concurrency must be at least 1, got %d", c.Batch.Concurrency))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// SlideSize resolves the configured slide size.
func (c *Config) SlideSize() slidegen.SlideSize {
	if c.Slide.Width > 0 && c.Slide.Height > 0 {
		return slidegen.CustomSlideSize(slidegen.Inch(c.Slide.Width), slidegen.Inch(c.Slide.Height))
	}
	return slidegen.NamedSlideSize(c.Slide.Size)
}

// Options converts the settings to generation options.
func (c *Config) Options(logger *slog.Logger) []slidegen.Option {
	return []slidegen.Option{
		slidegen.WithSlideSize(c.SlideSize()),
		slidegen.WithDPI(c.Image.DPI),
		slidegen.WithFallbackImageSize(c.Image.FallbackWidth, c.Image.FallbackHeight),
		slidegen.WithLogger(logger),
	}
}
