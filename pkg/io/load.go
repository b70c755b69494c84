package io

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/clusterviz/pkg/graph"
)

// ErrUnsupportedInput is returned by [Load] for argument combinations it
// cannot interpret.
var ErrUnsupportedInput = errors.New("expected NODES.csv EDGES.csv or GRAPH.json")

// Load reads a graph from one JSON file or from a nodes and an edges CSV file.
func Load(paths ...string) (*graph.Graph, error) {
	switch len(paths) {
	case 1:
		if strings.EqualFold(filepath.Ext(paths[0]), ".json") {
			return ImportJSON(paths[0])
		}
	case 2:
		return ImportCSV(paths[0], paths[1])
	}
	return nil, fmt.Errorf("%w: got %q", ErrUnsupportedInput, paths)
}
