package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/clusterviz/pkg/graph"
)

// Fixed column names of the CSV input files.
const (
	ColumnNode   = "Node"
	ColumnSource = "Source"
	ColumnTarget = "Target"
	ColumnWeight = "Weight"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing required column")

// header maps column names to their index.
type header map[string]int

func readHeader(r *csv.Reader, required ...string) (header, []string, error) {
	names, err := r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty file: %w: %s", ErrMissingColumn, strings.Join(required, ", "))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	h := make(header, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		names[i] = name
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return h, names, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

// ReadNodesCSV reads node records. The Node column is the ID; all other
// non-empty cells become string metadata keyed by their header.
func ReadNodesCSV(r io.Reader) ([]graph.Node, error) {
	cr := newReader(r)
	h, names, err := readHeader(cr, ColumnNode)
	if err != nil {
		return nil, err
	}
	idCol := h[ColumnNode]

	var nodes []graph.Node
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read nodes: %w", err)
		}
		n := graph.Node{ID: field(rec, idCol)}
		for i, name := range names {
			if i == idCol || name == "" {
				continue
			}
			if v := field(rec, i); v != "" {
				if n.Meta == nil {
					n.Meta = graph.Metadata{}
				}
				n.Meta[name] = v
			}
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ReadEdgesCSV reads edge records. Extra columns are ignored.
func ReadEdgesCSV(r io.Reader) ([]graph.Edge, error) {
	cr := newReader(r)
	h, _, err := readHeader(cr, ColumnSource, ColumnTarget, ColumnWeight)
	if err != nil {
		return nil, err
	}

	var edges []graph.Edge
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read edges: %w", err)
		}
		line, _ := cr.FieldPos(0)

		e := graph.Edge{
			Source: field(rec, h[ColumnSource]),
			Target: field(rec, h[ColumnTarget]),
			Weight: 1,
		}
		if raw := field(rec, h[ColumnWeight]); raw != "" {
			w, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: weight %q: %w", line, raw, graph.ErrInvalidWeight)
			}
			e.Weight = w
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// ImportCSV reads a nodes file and an edges file and builds the graph.
func ImportCSV(nodesPath, edgesPath string) (*graph.Graph, error) {
	nodes, err := readFile(nodesPath, ReadNodesCSV)
	if err != nil {
		return nil, err
	}
	edges, err := readFile(edgesPath, ReadEdgesCSV)
	if err != nil {
		return nil, err
	}
	return graph.Build(nodes, edges)
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
