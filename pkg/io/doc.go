// Package io reads graphs from CSV or JSON files and writes analysis results.
//
// # Overview
//
// Graphs usually arrive as two CSV files, one row per node and one row per
// edge:
//
//	nodes.csv            edges.csv
//	Node,name            Source,Target,Weight
//	A,alpha              A,B,1
//	B,beta               B,C,2
//	C,gamma
//	D,delta
//
// Columns are located by header name, so their order is free. The nodes file
// needs a "Node" column; every other column is kept as node metadata. The
// edges file needs "Source", "Target" and "Weight". An empty weight cell
// defaults to 1.
//
// # JSON Format
//
// The same graph can be stored as a single JSON document:
//
//	{
//	  "nodes": [{"id": "A", "meta": {"name": "alpha"}}, {"id": "B"}],
//	  "edges": [{"source": "A", "target": "B", "weight": 1}]
//	}
//
// [WriteJSON] and [ReadJSON] round-trip a graph exactly, including node and
// edge order.
//
// # Loading
//
// [Load] picks the reader from its arguments: one .json path reads a JSON
// graph, two paths read a nodes CSV and an edges CSV:
//
//	g, err := io.Load("nodes.csv", "edges.csv")
//
// All readers validate through [graph.Build], so an edge naming an unknown
// node fails with a [graph.MalformedEdgeError].
//
// # Export
//
// [WriteComponentsCSV] writes the Node,Component,Color table,
// [WriteMappingCSV] the per-component color mapping and [WriteLayoutCSV] the
// Node,X,Y[,Z] coordinates.
//
// [graph.Build]: github.com/matzehuels/clusterviz/pkg/graph.Build
// [graph.MalformedEdgeError]: github.com/matzehuels/clusterviz/pkg/graph.MalformedEdgeError
package io
