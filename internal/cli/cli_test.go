package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/clusterviz/pkg/errors"
	"github.com/matzehuels/clusterviz/pkg/layout"
	"github.com/matzehuels/clusterviz/pkg/render/sink"
)

const (
	testNodes = "Node,name\nA,alpha\nB,beta\nC,gamma\nD,delta\nE,epsilon\n"
	testEdges = "Source,Target,Weight\nA,B,1\nB,C,2\nD,E,1\n"
)

// captureOutput redirects status output to w until the returned func runs.
func captureOutput(w io.Writer) func() {
	old := out
	out = w
	return func() { out = old }
}

// writeInputs writes the test graph tables and returns their paths.
func writeInputs(t *testing.T, dir, nodes, edges string) (string, string) {
	t.Helper()
	np := filepath.Join(dir, "nodes.csv")
	ep := filepath.Join(dir, "edges.csv")
	require.NoError(t, os.WriteFile(np, []byte(nodes), 0o644))
	require.NoError(t, os.WriteFile(ep, []byte(edges), 0o644))
	return np, ep
}

// execute runs the root command with args and returns the status output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	restore := captureOutput(&buf)
	defer restore()

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty leaves defaults", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "html,svg,json", []string{"html", "svg", "json"}},
		{"spaces and empties", " png , ,pdf,", []string{"png", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFormats(tt.input))
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, fallback, want string
	}{
		{"", "", "graph"},
		{"", "out/net", "out/net"},
		{"plot", "out/net", "plot"},
		{"plot.html", "", "plot"},
		{"out/plot.svg", "", "out/plot"},
		{"plot.v2", "", "plot.v2"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, basePath(tt.output, tt.fallback), "basePath(%q, %q)", tt.output, tt.fallback)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"render", "components", "layout", "palette", "inspect", "serve", "completion"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	np, ep := writeInputs(t, dir, testNodes, testEdges)
	base := filepath.Join(dir, "out", "net")

	stdout, err := execute(t, "render", np, ep, "-f", "json,dot", "-o", base, "--seed", "7")
	require.NoError(t, err)

	for _, name := range []string{"net_3d.json", "net_2d.json", "net_2d.dot"} {
		assert.FileExists(t, filepath.Join(dir, "out", name))
	}
	assert.Contains(t, stdout, "Render complete")
	assert.Contains(t, stdout, "Component colors mapping")
	assert.Contains(t, stdout, "#1f77b4")
	assert.Contains(t, stdout, "5 nodes")

	data, err := os.ReadFile(base + "_3d.json")
	require.NoError(t, err)
	s, err := sink.ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Dimensions)
	assert.Equal(t, uint64(7), s.Seed)
	assert.Len(t, s.Nodes, 5)
	assert.Len(t, s.Mapping, 2)
}

func TestRenderCommandPlotlySrc(t *testing.T) {
	dir := t.TempDir()
	np, ep := writeInputs(t, dir, testNodes, testEdges)
	base := filepath.Join(dir, "net")

	_, err := execute(t, "render", np, ep, "-d", "2", "-o", base, "--plotly-src", "vendor/plotly.js")
	require.NoError(t, err)

	data, err := os.ReadFile(base + "_2d.html")
	require.NoError(t, err)
	assert.Contains(t, string(data), `src="vendor/plotly.js"`)
	assert.NotContains(t, string(data), sink.PlotlyCDN)
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	np, ep := writeInputs(t, dir, testNodes, testEdges)
	_, badEdges := writeInputs(t, t.TempDir(), testNodes, "Source,Target,Weight\nA,Z,1\n")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"render", np, ep, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad dimensions", []string{"render", np, ep, "-d", "4"}, errors.ErrCodeInvalidOption},
		{"bad color", []string{"render", np, ep, "--colors", "red"}, errors.ErrCodeInvalidInput},
		{"missing file", []string{"render", filepath.Join(dir, "nope.csv"), ep}, errors.ErrCodeFileNotFound},
		{"malformed edge", []string{"render", np, badEdges}, errors.ErrCodeMalformedEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestRenderCommandUsesConfig(t *testing.T) {
	dir := t.TempDir()
	np, ep := writeInputs(t, dir, testNodes, testEdges)
	base := filepath.Join(dir, "fromconfig")
	cfg := filepath.Join(dir, "clusterviz.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[layout]
dimensions = 2

[render]
formats = ["dot"]
output = "`+filepath.ToSlash(base)+`"
`), 0o644))

	_, err := execute(t, "render", np, ep, "--config", cfg)
	require.NoError(t, err)

	assert.FileExists(t, base+"_2d.dot")
	assert.NoFileExists(t, base+"_3d.json")
}

func TestComponentsCommand(t *testing.T) {
	dir := t.TempDir()
	np, ep := writeInputs(t, dir, testNodes, testEdges)
	csvPath := filepath.Join(dir, "components.csv")
	mappingPath := filepath.Join(dir, "mapping.csv")

	stdout, err := execute(t, "components", np, ep, "--csv", csvPath, "--mapping", mappingPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 2 components")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Node,Component,Color\nA,0,#1f77b4\nB,0,#1f77b4\nC,0,#1f77b4\nD,1,#ff7f0e\nE,1,#ff7f0e\n", string(data))

	data, err = os.ReadFile(mappingPath)
	require.NoError(t, err)
	assert.Equal(t, "Component,Color,Size\n0,#1f77b4,3\n1,#ff7f0e,2\n", string(data))
}

func TestComponentsCommandEmptyEdges(t *testing.T) {
	dir := t.TempDir()
	np, ep := writeInputs(t, dir, "Node\nA\nB\n", "Source,Target,Weight\n")

	stdout, err := execute(t, "components", np, ep)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 2 components")
	assert.Contains(t, stdout, "graph has 2 nodes but no edges")
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	np, ep := writeInputs(t, dir, testNodes, testEdges)

	csvPath := filepath.Join(dir, "layout.csv")
	stdout, err := execute(t, "layout", np, ep, "-o", csvPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Extent")
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "Node,X,Y,Z", lines[0])
	assert.Len(t, lines, 6)

	jsonPath := filepath.Join(dir, "layout.json")
	_, err = execute(t, "layout", np, ep, "-d", "2", "-o", jsonPath)
	require.NoError(t, err)
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	s, err := sink.ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Dimensions)
	assert.Len(t, s.Edges, 3)
}

func TestFormatExtent(t *testing.T) {
	lay := layout.Layout{
		Dimensions: 2,
		Order:      []string{"a", "b", "c"},
		Positions: map[string]layout.Position{
			"a": {-1, 0.5},
			"b": {1, -0.5},
			"c": {0.25, 0},
		},
	}
	assert.Equal(t, "x [-1.00, 1.00]  y [-0.50, 0.50]", formatExtent(lay))
}

func TestPaletteCommand(t *testing.T) {
	stdout, err := execute(t, "palette", "3")
	require.NoError(t, err)
	for _, hex := range []string{"#1f77b4", "#ff7f0e", "#2ca02c"} {
		assert.Contains(t, stdout, hex)
	}
	assert.Contains(t, stdout, "3 base colors")

	stdout, err = execute(t, "palette", "40", "--scale", "viridis")
	require.NoError(t, err)
	assert.Contains(t, stdout, "40 colors from viridis")

	stdout, err = execute(t, "palette", "--list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tab20")

	_, err = execute(t, "palette", "-1")
	require.Error(t, err)
}
