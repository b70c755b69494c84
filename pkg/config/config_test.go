package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/clusterviz/pkg/errors"
	"github.com/matzehuels/clusterviz/pkg/pipeline"
)

const sample = `
[layout]
dimensions = 2
seed = 7
iterations = 120
weighted = true

[palette]
scale = "viridis"
base = ["#000000", "#ffffff"]

[render]
formats = ["svg", "json"]
label = "name"
output = "out/graph"
plotly_src = "/static/plotly.min.js"

[serve]
addr = "127.0.0.1:9000"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clusterviz.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Layout.Dimensions)
	assert.Equal(t, uint64(7), c.Layout.Seed)
	assert.Equal(t, 120, c.Layout.Iterations)
	assert.True(t, c.Layout.Weighted)
	assert.Equal(t, "viridis", c.Palette.Scale)
	assert.Equal(t, []string{"#000000", "#ffffff"}, c.Palette.Base)
	assert.Equal(t, []string{"svg", "json"}, c.Render.Formats)
	assert.Equal(t, "out/graph", c.Render.Output)
	assert.Equal(t, "/static/plotly.min.js", c.Render.PlotlySrc)
	assert.Equal(t, "127.0.0.1:9000", c.Serve.Addr)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[layout\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[layout]\nseeds = 1\n", errors.ErrCodeInvalidConfig},
		{"bad dimensions", "[layout]\ndimensions = 5\n", errors.ErrCodeInvalidOption},
		{"bad color", "[palette]\nbase = [\"red\"]\n", errors.ErrCodeInvalidInput},
		{"bad format", "[render]\nformats = [\"gif\"]\n", errors.ErrCodeInvalidFormat},
		{"bad scale", "[palette]\nscale = \"nope\"\n", errors.ErrCodeInvalidOption},
		{"bad addr", "[serve]\naddr = \"localhost\"\n", errors.ErrCodeInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestApplyKeepsFlagValues(t *testing.T) {
	c, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	opts := pipeline.Options{Seed: 99, Formats: []string{"html"}}
	c.Apply(&opts)

	assert.Equal(t, uint64(99), opts.Seed, "flag value must win")
	assert.Equal(t, []string{"html"}, opts.Formats, "flag value must win")
	assert.Equal(t, 2, opts.Dimensions)
	assert.Equal(t, 120, opts.Iterations)
	assert.Equal(t, "viridis", opts.PaletteScale)
	assert.Equal(t, "name", opts.LabelKey)
	assert.Equal(t, "/static/plotly.min.js", opts.PlotlySrc)
	assert.True(t, opts.Weighted)
	require.NoError(t, opts.ValidateAndSetDefaults())
}

func TestResolve(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	c, path, err := Resolve("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Config{}, c)

	def := filepath.Join(xdg, "clusterviz", FileName)
	require.Equal(t, def, DefaultPath())
	require.NoError(t, os.MkdirAll(filepath.Dir(def), 0o755))
	require.NoError(t, os.WriteFile(def, []byte("[layout]\nseed = 3\n"), 0o644))

	c, path, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, def, path)
	assert.Equal(t, uint64(3), c.Layout.Seed)

	explicit := writeConfig(t, "[layout]\nseed = 4\n")
	c, path, err = Resolve(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, uint64(4), c.Layout.Seed)
}
