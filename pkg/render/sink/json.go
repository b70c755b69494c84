package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/clusterviz/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	noEdges bool
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONNodesOnly omits edge records, which dominate the size of dense graphs.
func WithJSONNodesOnly() JSONOption { return func(r *jsonRenderer) { r.noEdges = true } }

// RenderJSON exports the scene as JSON. The document carries the run ID,
// seed, graph fingerprint, palette and component mapping next to the node
// and edge records, so a scene can be re-rendered without recomputing it.
func RenderJSON(s scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.noEdges {
		s.Edges = nil
	}
	if r.compact {
		return json.Marshal(s)
	}
	return json.MarshalIndent(s, "", "  ")
}

// ParseJSON reads a scene written by [RenderJSON].
func ParseJSON(data []byte) (scene.Scene, error) {
	var s scene.Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return scene.Scene{}, fmt.Errorf("parse scene: %w", err)
	}
	if s.Dimensions != 2 && s.Dimensions != 3 {
		return scene.Scene{}, fmt.Errorf("parse scene: unsupported dimensions %d", s.Dimensions)
	}
	return s, nil
}
