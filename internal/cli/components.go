package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterviz/pkg/components"
	cvio "github.com/matzehuels/clusterviz/pkg/io"
	"github.com/matzehuels/clusterviz/pkg/palette"
	"github.com/matzehuels/clusterviz/pkg/pipeline"
)

// componentsCommand creates the components command, which reports connected
// components and their colors without computing a layout.
func (c *CLI) componentsCommand() *cobra.Command {
	var (
		csvPath     string
		mappingPath string
		limit       int
		flags       graphFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "components NODES.csv EDGES.csv | components GRAPH.json",
		Short: "List connected components and their colors",
		Long: `List connected components and their colors.

Components are numbered in discovery order, which follows the order of the
nodes file. Use --csv to export the node to component assignment and
--mapping to export one row per component.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(&opts)
			if _, err := c.loadConfig(&opts); err != nil {
				return err
			}
			return c.runComponents(cmd.Context(), args, opts, csvPath, mappingPath, limit)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write Node,Component,Color rows to this file")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "write Component,Color,Size rows to this file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many components (0: all)")
	flags.bind(cmd, &opts)

	return cmd
}

func (c *CLI) runComponents(ctx context.Context, inputs []string, opts pipeline.Options, csvPath, mappingPath string, limit int) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner := c.newRunner()
	g, err := runner.Load(ctx, inputs...)
	if err != nil {
		return err
	}
	for _, w := range g.Warnings() {
		printWarning("%s", w)
	}
	comps, pal := runner.Analyze(ctx, g, opts)

	if csvPath != "" {
		err := cvio.Export(csvPath, func(w io.Writer) error {
			return cvio.WriteComponentsCSV(w, g, comps, pal)
		})
		if err != nil {
			return fmt.Errorf("write %s: %w", csvPath, err)
		}
	}
	if mappingPath != "" {
		err := cvio.Export(mappingPath, func(w io.Writer) error {
			return cvio.WriteMappingCSV(w, comps, pal)
		})
		if err != nil {
			return fmt.Errorf("write %s: %w", mappingPath, err)
		}
	}

	printSuccess("Found %d components", comps.Count())
	for _, p := range []string{csvPath, mappingPath} {
		if p != "" {
			printFile(p)
		}
	}
	printStats(g.NodeCount(), g.EdgeCount(), comps.Count())
	printNewline()

	if comps.Count() == 0 {
		return nil
	}
	fmt.Fprintln(out, StyleTitle.Render("Component colors mapping"))
	fmt.Fprintln(out, componentTable(comps, pal, limit))
	printComponentSummary(comps, pal)
	return nil
}

// printComponentSummary prints the largest component and singleton count.
func printComponentSummary(comps *components.Result, pal palette.Palette) {
	largest := comps.Largest()
	printKeyValue("Largest", fmt.Sprintf("%d (%d nodes)", largest, comps.Size(largest)))
	printKeyValue("Singletons", fmt.Sprintf("%d", len(comps.Singletons())))
	printKeyValue("Palette", describePalette(pal))
}

func describePalette(p palette.Palette) string {
	if p.Strategy == palette.StrategyGenerated {
		return fmt.Sprintf("%d colors from %s", p.Len(), p.Scale)
	}
	return fmt.Sprintf("%d base colors", p.Len())
}
