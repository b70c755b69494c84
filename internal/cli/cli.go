// Package cli implements the clusterviz command-line interface.
package cli

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterviz/pkg/buildinfo"
	"github.com/matzehuels/clusterviz/pkg/config"
	"github.com/matzehuels/clusterviz/pkg/observability"
	"github.com/matzehuels/clusterviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "clusterviz"

	// defaultAddr is where the viewer listens when neither flag nor config sets it.
	defaultAddr = "127.0.0.1:8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is bound to the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline and
// server hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetServerHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Clusterviz colors graph components and lays them out in 2D and 3D",
		Long: `Clusterviz reads a graph from node and edge tables, finds its connected
components, gives every component its own color and computes a seeded
force-directed layout. The result is rendered as interactive HTML, SVG, PNG,
PDF, JSON or Graphviz output.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/clusterviz/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.componentsCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// loadConfig resolves the config file and merges it into opts. Values parsed
// from flags are already in opts and win over the file.
func (c *CLI) loadConfig(opts *pipeline.Options) (config.Config, error) {
	cfg, path, err := config.Resolve(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	cfg.Apply(opts)
	opts.Logger = c.Logger
	return cfg, nil
}

// =============================================================================
// Flags
// =============================================================================

// graphFlags are the analysis and layout flags shared by every command that
// runs the pipeline. Zero values mean "not set" so config values can fill in.
type graphFlags struct {
	colors string
}

func (f *graphFlags) bind(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVarP(&opts.Dimensions, "dimensions", "d", 0, "layout dimensions: 3 (default) or 2")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "layout random seed (default 42)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "layout iterations (default 50)")
	cmd.Flags().BoolVar(&opts.Weighted, "weighted", false, "use edge weights as spring strengths")
	cmd.Flags().Float64Var(&opts.LayoutScale, "layout-scale", 0, "half-width of the layout box (default 1)")
	cmd.Flags().StringVar(&opts.PaletteScale, "scale", "", "color scale for large graphs (default tab20, which repeats colors past 20 components; use viridis or hcl for distinct colors)")
	cmd.Flags().StringVar(&f.colors, "colors", "", "base colors as comma-separated #rrggbb values")
	cmd.Flags().StringVar(&opts.LabelKey, "label", "", "node column to use as label (default: node id)")
}

// apply copies flag values that need parsing into opts.
func (f *graphFlags) apply(opts *pipeline.Options) {
	if f.colors != "" {
		opts.BaseColors = splitList(f.colors)
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so config and pipeline defaults apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return splitList(s)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// basePath derives the output base. A known format extension on output is
// stripped; an empty output falls back to the config value, then to "graph".
func basePath(output, fallback string) string {
	if output == "" {
		output = fallback
	}
	if output == "" {
		return pipeline.DefaultOutputBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
