// Package pipeline provides the core clustering pipeline for clusterviz.
//
// This package implements the complete load → analyze → layout → render
// pipeline that is used by every CLI command and the HTTP viewer. By
// centralizing this logic, all entry points share defaults and behavior.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read node and edge records and build the graph
//  2. Analyze: Find connected components and choose the palette
//  3. Layout: Compute seeded force-directed positions in 2D or 3D
//  4. Render: Build scenes and generate outputs (HTML, SVG, PNG, PDF, JSON, DOT)
//
// Components and layout are independent of each other; both only read the
// graph. The 2D view of a 3D run is the projection of the 3D layout.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Run(ctx, pipeline.Options{Formats: []string{"html"}}, "nodes.csv", "edges.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Artifacts {
//	    os.WriteFile(a.Path("graph"), a.Data, 0o644)
//	}
//
// Run individual stages:
//
//	g, err := runner.Load(ctx, "graph.json")
//	comps, pal := runner.Analyze(ctx, g, opts)
//	lay, err := runner.ComputeLayout(ctx, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clusterviz/pkg/components"
	"github.com/matzehuels/clusterviz/pkg/errors"
	"github.com/matzehuels/clusterviz/pkg/graph"
	"github.com/matzehuels/clusterviz/pkg/layout"
	"github.com/matzehuels/clusterviz/pkg/palette"
	"github.com/matzehuels/clusterviz/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, config and viewer
// =============================================================================

const (
	// DefaultDimensions is the dimensionality of the primary layout.
	DefaultDimensions = layout.DefaultDimensions

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = layout.DefaultSeed

	// DefaultIterations is the fixed number of simulation steps.
	DefaultIterations = layout.DefaultIterations

	// DefaultLayoutScale is the largest absolute coordinate after rescaling.
	DefaultLayoutScale = layout.DefaultScale

	// DefaultPaletteScale is the color scale used beyond the base palette.
	DefaultPaletteScale = palette.DefaultScale

	// DefaultOutputBase is the default stem for output file names.
	DefaultOutputBase = "graph"
)

// Format constants for output formats.
const (
	FormatHTML     = "html"
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// View names used in artifact file names.
const (
	View3D = "3d"
	View2D = "2d"
)

// ValidFormats lists the supported output formats in documentation order.
var ValidFormats = []string{FormatHTML, FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraphviz}

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{FormatHTML}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the clustering pipeline.
// This struct supports JSON serialization for the viewer's query API.
type Options struct {
	// Layout options
	Dimensions  int     `json:"dimensions,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`
	Iterations  int     `json:"iterations,omitempty"`
	Weighted    bool    `json:"weighted,omitempty"`
	LayoutScale float64 `json:"layout_scale,omitempty"`
	K           float64 `json:"k,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`

	// Palette options
	PaletteScale string   `json:"palette_scale,omitempty"`
	BaseColors   []string `json:"base_colors,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	LabelKey string   `json:"label_key,omitempty"`
	Title    string   `json:"title,omitempty"`
	// PlotlySrc overrides the plotly.js URL in HTML output.
	PlotlySrc string `json:"plotly_src,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this execution in log lines. Artifacts do not carry it.
	RunID string

	// Graph is the input graph.
	Graph *graph.Graph

	// Components is the connected component analysis.
	Components *components.Result

	// Palette holds the component colors.
	Palette palette.Palette

	// Layout is the primary layout (3D unless Dimensions is 2).
	Layout layout.Layout

	// Scenes holds one scene per view, primary view first.
	Scenes []View

	// Artifacts contains rendered outputs in format order.
	Artifacts []Artifact

	// Warnings collects non-fatal conditions such as an empty graph.
	Warnings []error

	// Stats contains timing and size information.
	Stats Stats
}

// View is a named scene.
type View struct {
	Name  string
	Scene scene.Scene
}

// Scene returns the scene for the named view.
func (r *Result) Scene(name string) (scene.Scene, bool) {
	for _, v := range r.Scenes {
		if v.Name == name {
			return v.Scene, true
		}
	}
	return scene.Scene{}, false
}

// Artifact is one rendered output.
type Artifact struct {
	Format string
	View   string
	Ext    string
	Data   []byte
}

// Path returns the output path for base, e.g. "out/graph_3d.html".
func (a Artifact) Path(base string) string {
	if a.View == "" {
		return base + "." + a.Ext
	}
	return base + "_" + a.View + "." + a.Ext
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	ComponentCount int
	LoadTime       time.Duration
	AnalyzeTime    time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePaletteScale checks that a palette scale name is known.
func ValidatePaletteScale(name string) error {
	if _, err := palette.ScaleByName(name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid palette scale %q (valid: %s)",
			name, strings.Join(palette.ScaleNames(), ", "))
	}
	return nil
}

// ValidateDimensions checks that dims is 2 or 3.
func ValidateDimensions(dims int) error {
	if dims != 2 && dims != 3 {
		return errors.New(errors.ErrCodeInvalidOption, "dimensions must be 2 or 3, got %d", dims)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Dimensions == 0 {
		o.Dimensions = DefaultDimensions
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.LayoutScale == 0 {
		o.LayoutScale = DefaultLayoutScale
	}
	if o.PaletteScale == "" {
		o.PaletteScale = DefaultPaletteScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for analysis and layout.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateDimensions(o.Dimensions); err != nil {
		return err
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "iterations must not be negative, got %d", o.Iterations)
	}
	if o.LayoutScale < 0 || o.K < 0 || o.Temperature < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "scale, k and temperature must not be negative")
	}
	for _, c := range o.BaseColors {
		if err := errors.ValidateHexColor(c); err != nil {
			return err
		}
	}
	return ValidatePaletteScale(o.PaletteScale)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Title == "" {
		o.Title = "clusterviz"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions returns the layout engine configuration.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Dimensions:  o.Dimensions,
		Seed:        o.Seed,
		Iterations:  o.Iterations,
		K:           o.K,
		Temperature: o.Temperature,
		Scale:       o.LayoutScale,
		Weighted:    o.Weighted,
	}
}

// Views returns the views rendered for the configured dimensionality,
// primary view first.
func (o *Options) Views() []string {
	if o.Dimensions == 2 {
		return []string{View2D}
	}
	return []string{View3D, View2D}
}

// String summarizes the options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("dims=%d seed=%d iterations=%d weighted=%t palette=%s formats=%s",
		o.Dimensions, o.Seed, o.Iterations, o.Weighted, o.PaletteScale, strings.Join(o.Formats, ","))
}
