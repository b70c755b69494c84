package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterviz/pkg/pipeline"
)

// inspectCommand creates the inspect command, an interactive component browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags graphFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect NODES.csv EDGES.csv | inspect GRAPH.json",
		Short: "Browse connected components interactively",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(&opts)
			if _, err := c.loadConfig(&opts); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args, opts)
		},
	}
	flags.bind(cmd, &opts)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, inputs []string, opts pipeline.Options) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	runner := c.newRunner()
	g, err := runner.Load(ctx, inputs...)
	if err != nil {
		return err
	}
	comps, pal := runner.Analyze(ctx, g, opts)

	model := NewComponentListModel(NewComponentRows(g, comps, pal))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("component browser: %w", err)
	}
	return nil
}
