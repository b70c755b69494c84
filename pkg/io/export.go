package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/clusterviz/pkg/components"
	"github.com/matzehuels/clusterviz/pkg/graph"
	"github.com/matzehuels/clusterviz/pkg/layout"
	"github.com/matzehuels/clusterviz/pkg/palette"
)

// WriteComponentsCSV writes one Node,Component,Color row per node in graph order.
func WriteComponentsCSV(w io.Writer, g *graph.Graph, comps *components.Result, pal palette.Palette) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{ColumnNode, "Component", "Color"})
	for _, id := range g.NodeIDs() {
		cid, ok := comps.Of(id)
		if !ok {
			return fmt.Errorf("node %q has no component", id)
		}
		_ = cw.Write([]string{id, strconv.Itoa(cid), pal.Color(cid)})
	}
	return flush(cw)
}

// WriteMappingCSV writes one Component,Color,Size row per component.
func WriteMappingCSV(w io.Writer, comps *components.Result, pal palette.Palette) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Component", "Color", "Size"})
	for cid := range comps.Count() {
		_ = cw.Write([]string{strconv.Itoa(cid), pal.Color(cid), strconv.Itoa(comps.Size(cid))})
	}
	return flush(cw)
}

// WriteLayoutCSV writes Node,X,Y (and Z for 3D layouts) rows in layout order.
func WriteLayoutCSV(w io.Writer, l layout.Layout) error {
	cw := csv.NewWriter(w)
	head := []string{ColumnNode, "X", "Y"}
	if l.Dimensions == 3 {
		head = append(head, "Z")
	}
	_ = cw.Write(head)

	for _, id := range l.Order {
		p := l.Positions[id]
		rec := []string{id}
		for d := range len(head) - 1 {
			rec = append(rec, strconv.FormatFloat(p[d], 'g', -1, 64))
		}
		_ = cw.Write(rec)
	}
	return flush(cw)
}

// Export creates path and fills it with write.
func Export(path string, write func(io.Writer) error) error {
	return writeFile(path, write)
}

func flush(cw *csv.Writer) error {
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
