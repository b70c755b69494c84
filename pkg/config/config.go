// Package config loads clusterviz settings from a TOML file.
//
// A config file has one table per concern. Every key is optional; unset keys
// keep the pipeline defaults, and command-line flags override file values.
//
//	[layout]
//	dimensions = 3
//	seed = 42
//	iterations = 50
//	weighted = false
//	scale = 1.0
//
//	[palette]
//	scale = "tab20"
//	base = ["#1f77b4", "#ff7f0e"]
//
//	[render]
//	formats = ["html", "svg"]
//	label = "name"
//	output = "out/graph"
//	plotly_src = "/static/plotly.min.js"
//
//	[serve]
//	addr = ":8080"
//
// Unknown keys are rejected so typos surface instead of being ignored.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/clusterviz/pkg/errors"
	"github.com/matzehuels/clusterviz/pkg/pipeline"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Config mirrors the TOML file layout.
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Palette PaletteConfig `toml:"palette"`
	Render  RenderConfig  `toml:"render"`
	Serve   ServeConfig   `toml:"serve"`
}

type LayoutConfig struct {
	Dimensions  int     `toml:"dimensions"`
	Seed        uint64  `toml:"seed"`
	Iterations  int     `toml:"iterations"`
	Weighted    bool    `toml:"weighted"`
	Scale       float64 `toml:"scale"`
	K           float64 `toml:"k"`
	Temperature float64 `toml:"temperature"`
}

type PaletteConfig struct {
	Scale string   `toml:"scale"`
	Base  []string `toml:"base"`
}

type RenderConfig struct {
	Formats []string `toml:"formats"`
	Label   string   `toml:"label"`
	Output  string   `toml:"output"`
	Title   string   `toml:"title"`
	// PlotlySrc replaces the plotly.js CDN URL in HTML output.
	PlotlySrc string `toml:"plotly_src"`
}

type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Load decodes and validates the file at path.
func Load(path string) (Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/clusterviz/config.toml, falling back
// to the platform user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "clusterviz", FileName)
}

// Resolve loads path if set, else the default file if it exists. It returns
// the zero Config and an empty path when neither applies.
func Resolve(path string) (Config, string, error) {
	if path != "" {
		c, err := Load(path)
		return c, path, err
	}
	def := DefaultPath()
	if def == "" {
		return Config{}, "", nil
	}
	if _, err := os.Stat(def); err != nil {
		return Config{}, "", nil
	}
	c, err := Load(def)
	return c, def, err
}

// Validate checks values that can be checked without running the pipeline.
func (c Config) Validate() error {
	if c.Layout.Dimensions != 0 {
		if err := pipeline.ValidateDimensions(c.Layout.Dimensions); err != nil {
			return err
		}
	}
	if c.Layout.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.iterations must not be negative")
	}
	if c.Palette.Scale != "" {
		if err := pipeline.ValidatePaletteScale(c.Palette.Scale); err != nil {
			return err
		}
	}
	for _, hex := range c.Palette.Base {
		if err := errors.ValidateHexColor(hex); err != nil {
			return err
		}
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if c.Render.Output != "" {
		if err := errors.ValidateOutputBase(c.Render.Output); err != nil {
			return err
		}
	}
	if c.Serve.Addr != "" {
		if err := errors.ValidateListenAddr(c.Serve.Addr); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies every set value into opts. Values already set in opts win,
// so flags parsed into opts take precedence over the file.
func (c Config) Apply(opts *pipeline.Options) {
	setDefault(&opts.Dimensions, c.Layout.Dimensions)
	setDefault(&opts.Seed, c.Layout.Seed)
	setDefault(&opts.Iterations, c.Layout.Iterations)
	setDefault(&opts.LayoutScale, c.Layout.Scale)
	setDefault(&opts.K, c.Layout.K)
	setDefault(&opts.Temperature, c.Layout.Temperature)
	setDefault(&opts.PaletteScale, c.Palette.Scale)
	setDefault(&opts.LabelKey, c.Render.Label)
	setDefault(&opts.Title, c.Render.Title)
	setDefault(&opts.PlotlySrc, c.Render.PlotlySrc)
	opts.Weighted = opts.Weighted || c.Layout.Weighted
	if len(opts.BaseColors) == 0 {
		opts.BaseColors = c.Palette.Base
	}
	if len(opts.Formats) == 0 {
		opts.Formats = c.Render.Formats
	}
}

func setDefault[T comparable](dst *T, v T) {
	var zero T
	if *dst == zero {
		*dst = v
	}
}
