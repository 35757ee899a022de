// Package config loads the settings of an icon versioning run from a YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/esimov/iconversion"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ICON_VERSIONING_"

// Config mirrors iconversion.Options in a serializable form.
type Config struct {
	AppIconSetPath           string    `yaml:"appiconset_path" env:"APPICONSET_PATH"`
	Text                     string    `yaml:"text" env:"TEXT"`
	TextMarginsPercentages   []float64 `yaml:"text_margins_percentages" env:"TEXT_MARGINS_PERCENTAGES" envSeparator:","`
	BandHeightPercentage     float64   `yaml:"band_height_percentage" env:"BAND_HEIGHT_PERCENTAGE"`
	BandBlurRadiusPercentage float64   `yaml:"band_blur_radius_percentage" env:"BAND_BLUR_RADIUS_PERCENTAGE"`
	BandBlurSigmaPercentage  float64   `yaml:"band_blur_sigma_percentage" env:"BAND_BLUR_SIGMA_PERCENTAGE"`
	IgnoredIconsRegex        string    `yaml:"ignored_icons_regex" env:"IGNORED_ICONS_REGEX"`
	FontPath                 string    `yaml:"font_path" env:"FONT_PATH"`
	BlurMode                 string    `yaml:"blur_mode" env:"BLUR_MODE"`
	Workers                  int       `yaml:"workers" env:"WORKERS"`
	KeepIntermediates        bool      `yaml:"keep_intermediates" env:"KEEP_INTERMEDIATES"`
}

// Default returns the configuration matching iconversion.DefaultOptions.
func Default() Config {
	o := iconversion.DefaultOptions()
	return Config{
		Text:                     o.Text,
		TextMarginsPercentages:   o.TextMarginsPercentages,
		BandHeightPercentage:     o.BandHeightPercentage,
		BandBlurRadiusPercentage: o.BandBlurRadiusPercentage,
		BandBlurSigmaPercentage:  o.BandBlurSigmaPercentage,
		BlurMode:                 string(o.BlurMode),
	}
}

// Load returns the defaults overridden by the YAML file at path, when not
// empty, and then by the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ParseEnv overrides target with the ICON_VERSIONING_* environment variables.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Options converts the configuration and compiles the ignore pattern.
func (c Config) Options() (iconversion.Options, error) {
	opts := iconversion.Options{
		AppIconSetPath:           c.AppIconSetPath,
		Text:                     c.Text,
		TextMarginsPercentages:   c.TextMarginsPercentages,
		BandHeightPercentage:     c.BandHeightPercentage,
		BandBlurRadiusPercentage: c.BandBlurRadiusPercentage,
		BandBlurSigmaPercentage:  c.BandBlurSigmaPercentage,
		FontPath:                 c.FontPath,
		Workers:                  c.Workers,
		KeepIntermediates:        c.KeepIntermediates,
	}
	if c.BlurMode != "" {
		if err := opts.BlurMode.Set(c.BlurMode); err != nil {
			return opts, err
		}
	}
	if c.IgnoredIconsRegex != "" {
		re, err := regexp.Compile(c.IgnoredIconsRegex)
		if err != nil {
			return opts, fmt.Errorf("invalid ignored icons regex: %w", err)
		}
		opts.IgnoredIconsRegex = re
	}
	return opts, nil
}
