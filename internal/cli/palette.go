package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterviz/pkg/errors"
	"github.com/matzehuels/clusterviz/pkg/palette"
	"github.com/matzehuels/clusterviz/pkg/pipeline"
)

// paletteCommand creates the palette command, which previews the colors
// assigned to N components.
func (c *CLI) paletteCommand() *cobra.Command {
	var (
		scaleName string
		colors    string
		list      bool
	)

	cmd := &cobra.Command{
		Use:   "palette N",
		Short: "Preview the colors for N components",
		Long: `Preview the colors for N components.

Up to the size of the base palette the base colors are used in order. Larger
counts draw evenly spaced colors from the chosen scale.`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range palette.ScaleNames() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			if len(args) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "palette needs a component count")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "component count must be a non-negative integer, got %q", args[0])
			}

			opts := pipeline.Options{PaletteScale: scaleName}
			if colors != "" {
				opts.BaseColors = splitList(colors)
			}
			if _, err := c.loadConfig(&opts); err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			return runPalette(n, opts)
		},
	}

	cmd.Flags().StringVar(&scaleName, "scale", "", "color scale for large counts (default tab20, which repeats colors past 20; use viridis or hcl for distinct colors)")
	cmd.Flags().StringVar(&colors, "colors", "", "base colors as comma-separated #rrggbb values")
	cmd.Flags().BoolVar(&list, "list", false, "list the available scales")

	return cmd
}

func runPalette(n int, opts pipeline.Options) error {
	scale, err := palette.ScaleByName(opts.PaletteScale)
	if err != nil {
		return err
	}
	p := palette.New(n, palette.WithScale(scale), palette.WithBase(opts.BaseColors))

	printSuccess("%s", describePalette(p))
	var b strings.Builder
	for cid := range n {
		color := p.Color(cid)
		fmt.Fprintf(&b, "%s %s %s\n", StyleNumber.Render(fmt.Sprintf("%4d", cid)), swatch(color), color)
	}
	fmt.Fprint(out, b.String())
	if n > 1 {
		printKeyValue("Min ΔE", fmt.Sprintf("%.3f", p.MinDistance()))
	}
	return nil
}
