package pipeline_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clusterviz/pkg/pipeline"
)

func ExampleRunner_Run() {
	runner := pipeline.NewRunner(log.New(io.Discard))
	result, err := runner.Run(context.Background(),
		pipeline.Options{Formats: []string{"html", "json"}, LabelKey: "name"},
		"../../examples/clusters/nodes.csv", "../../examples/clusters/edges.csv")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("components:", result.Stats.ComponentCount)
	for _, m := range result.Scenes[0].Scene.Mapping {
		fmt.Printf("  %d %s size=%d\n", m.Component, m.Color, m.Size)
	}
	for _, a := range result.Artifacts {
		fmt.Println(a.Path("clusters"))
	}
	// Output:
	// components: 4
	//   0 #1f77b4 size=4
	//   1 #ff7f0e size=3
	//   2 #2ca02c size=2
	//   3 #d62728 size=1
	// clusters_3d.html
	// clusters_2d.html
	// clusters_3d.json
	// clusters_2d.json
}
