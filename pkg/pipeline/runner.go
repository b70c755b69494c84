package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/clusterviz/pkg/components"
	"github.com/matzehuels/clusterviz/pkg/errors"
	"github.com/matzehuels/clusterviz/pkg/graph"
	cvio "github.com/matzehuels/clusterviz/pkg/io"
	"github.com/matzehuels/clusterviz/pkg/layout"
	"github.com/matzehuels/clusterviz/pkg/observability"
	"github.com/matzehuels/clusterviz/pkg/palette"
	"github.com/matzehuels/clusterviz/pkg/scene"
)

// Runner encapsulates pipeline execution.
// Both the CLI and the HTTP viewer use this to avoid duplicating stage logic.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run loads a graph from paths and executes the full pipeline on it.
func (r *Runner) Run(ctx context.Context, opts Options, paths ...string) (*Result, error) {
	start := time.Now()
	g, err := r.Load(ctx, paths...)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)

	result, err := r.Execute(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Load reads a graph from one JSON file or a nodes and an edges CSV file.
// Errors carry a pkg/errors code describing the failure class.
func (r *Runner) Load(ctx context.Context, paths ...string) (*graph.Graph, error) {
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	g, err := cvio.Load(paths...)
	duration := time.Since(start)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, 0, 0, duration, err)
		return nil, classifyLoadError(err, paths)
	}
	observability.Pipeline().OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), duration, nil)

	r.Logger.Info("loaded graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", duration)
	return g, nil
}

func classifyLoadError(err error, paths []string) error {
	what := strings.Join(paths, ", ")
	var malformed *graph.MalformedEdgeError
	switch {
	case stderrors.As(err, &malformed):
		return errors.Wrap(errors.ErrCodeMalformedEdge, err, "load %s", what)
	case stderrors.Is(err, cvio.ErrMissingColumn):
		return errors.Wrap(errors.ErrCodeMissingColumn, err, "load %s", what)
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "load %s", what)
	default:
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", what)
	}
}

// Execute runs the analyze → layout → render stages on g.
// Non-fatal conditions are logged at warn level and collected in Result.Warnings.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID: uuid.NewString(),
		Graph: g,
	}
	logger := opts.Logger.With("run", shortID(result.RunID))
	logger.Debug("pipeline options", "opts", opts.String())

	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	for _, w := range g.Warnings() {
		logger.Warn(w.Error())
		result.Warnings = append(result.Warnings, w)
	}

	// Stage 1: Analyze
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	analyzeStart := time.Now()
	comps, pal := r.Analyze(ctx, g, opts)
	result.Components = comps
	result.Palette = pal
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.ComponentCount = comps.Count()

	logger.Info("found components",
		"count", comps.Count(),
		"largest", comps.Size(comps.Largest()),
		"palette", pal.Strategy,
		"duration", result.Stats.AnalyzeTime)

	// Stage 2: Layout
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	layoutStart := time.Now()
	lay, err := r.ComputeLayout(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = lay
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Info("computed layout",
		"dims", lay.Dimensions,
		"seed", lay.Seed,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	views, err := BuildViews(g, comps, pal, lay, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build scenes")
	}
	result.Scenes = views

	renderStart := time.Now()
	artifacts, err := r.Render(ctx, views, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"files", len(artifacts),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Analyze finds the connected components of g and the palette for them.
func (r *Runner) Analyze(ctx context.Context, g *graph.Graph, opts Options) (*components.Result, palette.Palette) {
	start := time.Now()
	comps := components.Find(g)

	scale, err := palette.ScaleByName(opts.PaletteScale)
	if err != nil {
		scale, _ = palette.ScaleByName(palette.DefaultScale)
	}
	pal := palette.New(comps.Count(), palette.WithScale(scale), palette.WithBase(opts.BaseColors))

	observability.Pipeline().OnComponentsComplete(ctx, comps.Count(), time.Since(start))
	return comps, pal
}

// ComputeLayout runs the force-directed layout for g.
func (r *Runner) ComputeLayout(ctx context.Context, g *graph.Graph, opts Options) (layout.Layout, error) {
	lo := opts.LayoutOptions()
	observability.Pipeline().OnLayoutStart(ctx, lo.Dimensions, g.NodeCount())

	start := time.Now()
	lay, err := layout.Compute(g, lo)
	observability.Pipeline().OnLayoutComplete(ctx, lo.Dimensions, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, errors.Wrap(errors.ErrCodeInvalidOption, err, "compute layout")
	}
	return lay, nil
}

// BuildViews assembles the scenes for every configured view. A 3D layout
// yields a 3D scene and its 2D projection; a 2D layout yields one scene.
func BuildViews(g *graph.Graph, comps *components.Result, pal palette.Palette, lay layout.Layout, opts Options) ([]View, error) {
	primary, err := scene.Build(g, comps, pal, lay, scene.Options{LabelKey: opts.LabelKey})
	if err != nil {
		return nil, err
	}
	if primary.Dimensions == 2 {
		return []View{{Name: View2D, Scene: primary}}, nil
	}
	return []View{
		{Name: View3D, Scene: primary},
		{Name: View2D, Scene: primary.Project2D()},
	}, nil
}

// Render generates artifacts for every requested format.
func (r *Runner) Render(ctx context.Context, views []View, opts Options) ([]Artifact, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	start := time.Now()
	artifacts, err := Render(views, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func checkCanceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCanceled, err, "pipeline canceled")
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
