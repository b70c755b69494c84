package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterviz/pkg/errors"
	cvio "github.com/matzehuels/clusterviz/pkg/io"
	"github.com/matzehuels/clusterviz/pkg/layout"
	"github.com/matzehuels/clusterviz/pkg/pipeline"
	"github.com/matzehuels/clusterviz/pkg/render/sink"
)

// layoutCommand creates the layout command, which exports node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  graphFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout NODES.csv EDGES.csv | layout GRAPH.json",
		Short: "Compute node positions without rendering",
		Long: `Compute node positions without rendering.

Positions are written as CSV (Node,X,Y[,Z]) unless the output file ends in
.json, in which case the full scene with colors and edges is written. Without
-o the CSV goes to stdout.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(&opts)
			if _, err := c.loadConfig(&opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file: .csv or .json (default: CSV on stdout)")
	flags.bind(cmd, &opts)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, inputs []string, opts pipeline.Options, output string) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	asJSON := strings.EqualFold(filepath.Ext(output), ".json")

	runner := c.newRunner()
	g, err := runner.Load(ctx, inputs...)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %dD layout...", opts.Dimensions))
	spinner.Start()
	lay, err := runner.ComputeLayout(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	var write func(io.Writer) error
	if asJSON {
		comps, pal := runner.Analyze(ctx, g, opts)
		views, err := pipeline.BuildViews(g, comps, pal, lay, opts)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "build scene")
		}
		data, err := sink.RenderJSON(views[0].Scene)
		if err != nil {
			return err
		}
		write = func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}
	} else {
		write = func(w io.Writer) error { return cvio.WriteLayoutCSV(w, lay) }
	}

	if output == "" {
		return write(os.Stdout)
	}
	if err := cvio.Export(output, write); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", output)
	}

	printSuccess("Layout complete")
	printFile(output)
	printKeyValue("Dimensions", fmt.Sprintf("%d", lay.Dimensions))
	printKeyValue("Seed", fmt.Sprintf("%d", lay.Seed))
	printKeyValue("Iterations", fmt.Sprintf("%d", lay.Iterations))
	if lay.Len() > 0 {
		printKeyValue("Extent", formatExtent(lay))
	}
	return nil
}

// formatExtent describes the per-axis range of the layout, e.g.
// "x [-1.00, 1.00]  y [-0.80, 0.95]".
func formatExtent(lay layout.Layout) string {
	lo, hi := lay.Bounds()
	parts := make([]string, len(lo))
	for d := range lo {
		parts[d] = fmt.Sprintf("%c [%.2f, %.2f]", "xyz"[d], lo[d], hi[d])
	}
	return strings.Join(parts, "  ")
}
