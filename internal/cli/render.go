package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterviz/pkg/errors"
	"github.com/matzehuels/clusterviz/pkg/pipeline"
	"github.com/matzehuels/clusterviz/pkg/render/sink"
)

// mappingRows is how many components the render summary lists.
const mappingRows = 10

// renderCommand creates the render command: load, analyze, lay out, render.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		title      string
		plotlySrc  string
		flags      graphFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render NODES.csv EDGES.csv | render GRAPH.json",
		Short: "Render a graph colored by connected component",
		Long: `Render a graph colored by connected component.

The graph is read from a nodes and an edges CSV file (columns Node and
Source,Target,Weight) or from a single JSON graph file. Every connected
component gets its own color and the nodes are placed by a seeded
force-directed layout, so the same input and seed always give the same picture.

A 3D layout produces both a 3D and a 2D view; files are named
<base>_<view>.<ext>, e.g. graph_3d.html and graph_2d.html. Static formats
(svg, png, pdf, dot, graphviz) draw the 2D view.`,
		Example: `  clusterviz render nodes.csv edges.csv
  clusterviz render nodes.csv edges.csv -f html,svg,json -o out/net --seed 7
  clusterviz render graph.json -d 2 -f png`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			opts.Title = title
			opts.PlotlySrc = plotlySrc
			flags.apply(&opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			cfg, err := c.loadConfig(&opts)
			if err != nil {
				return err
			}
			base := basePath(output, cfg.Render.Output)
			if err := errors.ValidateOutputBase(base); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, opts, base)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), svg, png, pdf, json, dot, graphviz (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: graph)")
	cmd.Flags().StringVar(&title, "title", "", "page title for HTML output")
	cmd.Flags().StringVar(&plotlySrc, "plotly-src", "", "plotly.js URL for HTML output (default "+sink.PlotlyCDN+")")
	flags.bind(cmd, &opts)

	return cmd
}

// runRender executes the pipeline and writes every artifact under base.
func (c *CLI) runRender(ctx context.Context, inputs []string, opts pipeline.Options, base string) error {
	runner := c.newRunner()

	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(inputs, ", ")+"...")
	spinner.Start()

	result, err := runner.Run(ctx, opts, inputs...)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	prog := newProgress(c.Logger)
	paths, err := writeArtifacts(result.Artifacts, base)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ComponentCount)
	printNewline()

	if result.Components.Count() > 0 {
		fmt.Fprintln(out, StyleTitle.Render("Component colors mapping"))
		fmt.Fprintln(out, componentTable(result.Components, result.Palette, mappingRows))
		printNewline()
	}
	printNextStep("Browse", fmt.Sprintf("%s serve %s", appName, strings.Join(inputs, " ")))
	return nil
}

// writeArtifacts writes each artifact to its path under base and returns
// the paths in order.
func writeArtifacts(artifacts []pipeline.Artifact, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeWriteFailed, err, "create output directory %s", dir)
		}
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := a.Path(base)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
