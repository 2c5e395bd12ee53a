package emit

import (
	"encoding/json"
	"io"

	"github.com/catalystbuild/catalyst/internal/cmdbuilder"
	"github.com/catalystbuild/catalyst/internal/graph"
)

// compDBEntry mirrors the clang/LSP compile_commands.json entry shape.
type compDBEntry struct {
	Directory string   `json:"directory"`
	Arguments []string `json:"arguments"`
	File      string   `json:"file"`
	Output    string   `json:"output"`
}

// CompDB writes a compile_commands.json array covering every cc/cxx step
// in g, regardless of staleness, per spec §4.H.
func CompDB(w io.Writer, g *graph.Graph, b *cmdbuilder.Builder, directory string) error {
	var entries []compDBEntry
	for _, step := range g.Steps {
		if graph.Tool(step.Tool) != graph.ToolCC && graph.Tool(step.Tool) != graph.ToolCXX {
			continue
		}
		argv, err := b.Build(step)
		if err != nil {
			return err
		}
		file := ""
		if len(step.Inputs) > 0 {
			file = step.Inputs[0]
		}
		entries = append(entries, compDBEntry{
			Directory: directory,
			Arguments: argv,
			File:      file,
			Output:    step.Output,
		})
	}
	if entries == nil {
		entries = []compDBEntry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
