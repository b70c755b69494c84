package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/clusterviz/pkg/graph"
)

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID   string         `json:"id"`
	Meta graph.Metadata `json:"meta,omitempty"`
}

type jsonEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Weight *float64 `json:"weight,omitempty"`
}

// WriteJSON encodes g as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := jsonGraph{
		Nodes: make([]jsonNode, 0, g.NodeCount()),
		Edges: make([]jsonEdge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, jsonNode{ID: n.ID, Meta: n.Meta})
	}
	for _, e := range g.Edges() {
		weight := e.Weight
		out.Edges = append(out.Edges, jsonEdge{Source: e.Source, Target: e.Target, Weight: &weight})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *graph.Graph, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(g, w) })
}

// ReadJSON decodes a JSON graph from r. Missing edge weights default to 1.
//
// ReadJSON returns the same validation errors as [graph.Build]. It does not
// close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	nodes := make([]graph.Node, len(data.Nodes))
	for i, n := range data.Nodes {
		nodes[i] = graph.Node{ID: n.ID, Meta: n.Meta}
	}
	edges := make([]graph.Edge, len(data.Edges))
	for i, e := range data.Edges {
		edges[i] = graph.Edge{Source: e.Source, Target: e.Target, Weight: 1}
		if e.Weight != nil {
			edges[i].Weight = *e.Weight
		}
	}
	return graph.Build(nodes, edges)
}

// ImportJSON reads a JSON graph file at path.
func ImportJSON(path string) (*graph.Graph, error) {
	return readFile(path, ReadJSON)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
