package manifest

import (
	"strings"

	"github.com/catalystbuild/catalyst/internal/cbeerrors"
	"github.com/catalystbuild/catalyst/internal/graph"
)

// Parse reads a text manifest and populates g. Lines are split on '\n';
// a trailing '\r' is stripped. Blank lines and lines starting with '#'
// are ignored. Every other line is either a "DEF|key|value" definition,
// which needs at least two '|' (the value may contain more), or a
// "tool|inputs|output" step, which needs exactly two.
func Parse(g *graph.Graph, data []byte) error {
	text := string(data)
	lineNo := 0
	for _, rawLine := range strings.Split(text, "\n") {
		lineNo++
		line := strings.TrimSuffix(rawLine, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := parseLine(g, line); err != nil {
			return err
		}
	}
	return nil
}

func parseLine(g *graph.Graph, line string) error {
	if strings.HasPrefix(line, "DEF|") {
		rest := line[len("DEF|"):]
		key, value, ok := splitOnce(rest, "|")
		if !ok {
			return cbeerrors.New(cbeerrors.MalformedManifest, "DEF line requires at least two '|': "+line)
		}
		g.AddDefinition(key, value)
		return nil
	}

	if strings.Count(line, "|") != 2 {
		return cbeerrors.New(cbeerrors.MalformedManifest, "step line requires exactly two '|': "+line)
	}
	parts := strings.SplitN(line, "|", 3)
	tool, inputsRaw, output := parts[0], parts[1], parts[2]
	if !graph.ValidTool(tool) {
		return cbeerrors.New(cbeerrors.MalformedManifest, "unknown tool: "+tool)
	}

	step := graph.BuildStep{
		Tool:      tool,
		InputsRaw: inputsRaw,
		Inputs:    splitInputs(inputsRaw),
		Output:    output,
	}
	_, err := g.AddStep(step)
	return err
}

// splitOnce splits s on the first occurrence of sep; ok is false if sep
// does not occur. Any further sep stays in tail unchecked.
func splitOnce(s, sep string) (head, tail string, ok bool) {
	idx := strings.Index(s, sep)
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

// splitInputs splits a comma-separated input specification, discarding
// empty segments, per spec §3's definition of parsed_inputs.
func splitInputs(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
