package bincache

import (
	"encoding/binary"
	"io"

	"github.com/catalystbuild/catalyst/internal/cbeerrors"
	"github.com/catalystbuild/catalyst/internal/graph"
)

const (
	headerSize = 8 + 8*4 // magic[8] + 4 u64 fields
	none       = ^uint64(0)
)

// Emit serializes g to w in the layout described in spec §4.D.
func Emit(w io.Writer, g *graph.Graph) error {
	pool := newPoolBuilder()

	defBuf := make([]byte, 0, len(g.Definitions)*32)
	for _, d := range g.Definitions {
		k := pool.intern(d.Key)
		v := pool.intern(d.Value)
		defBuf = appendU64(defBuf, k.Offset, k.Len, v.Offset, v.Len)
	}

	nodeBuf := make([]byte, 0, len(g.Nodes)*32)
	for _, n := range g.Nodes {
		p := pool.intern(n.Path)
		stepID := none
		if n.HasStep() {
			stepID = uint64(n.StepID)
		}
		nodeBuf = appendU64(nodeBuf, p.Offset, p.Len, stepID, uint64(len(n.OutEdges)))
		for _, e := range n.OutEdges {
			nodeBuf = appendU64(nodeBuf, uint64(e))
		}
	}

	stepBuf := make([]byte, 0, len(g.Steps)*48)
	for _, s := range g.Steps {
		tool := pool.intern(s.Tool)
		inputsRaw := pool.intern(s.InputsRaw)
		output := pool.intern(s.Output)
		depfileCount := none
		if s.HasDepfile {
			depfileCount = uint64(len(s.DepfileInputs))
		}
		stepBuf = appendU64(stepBuf,
			tool.Offset, tool.Len,
			inputsRaw.Offset, inputsRaw.Len,
			output.Offset, output.Len,
			depfileCount,
		)
		if s.HasDepfile {
			for _, dep := range s.DepfileInputs {
				ref := pool.intern(dep)
				stepBuf = appendU64(stepBuf, ref.Offset, ref.Len)
			}
		}
	}

	header := make([]byte, 0, headerSize)
	header = append(header, []byte(magic)...)
	header = appendU64(header,
		uint64(len(g.Definitions)),
		uint64(len(g.Nodes)),
		uint64(len(g.Steps)),
		uint64(len(pool.bytes())),
	)

	for _, chunk := range [][]byte{header, defBuf, nodeBuf, stepBuf, pool.bytes()} {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

func appendU64(buf []byte, vs ...uint64) []byte {
	var tmp [8]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint64(tmp[:], v)
		buf = append(buf, tmp[:]...)
	}
	return buf
}

// cursor is a bounds-checked little-endian reader over a byte slice.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) u64() (uint64, error) {
	if c.pos+8 > len(c.data) {
		return 0, cbeerrors.New(cbeerrors.BinaryCacheInvalid, "truncated file")
	}
	v := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *cursor) stringRef(pool []byte) (string, error) {
	off, err := c.u64()
	if err != nil {
		return "", err
	}
	ln, err := c.u64()
	if err != nil {
		return "", err
	}
	if off+ln > uint64(len(pool)) || off+ln < off {
		return "", cbeerrors.New(cbeerrors.BinaryCacheInvalid, "string ref out of bounds")
	}
	return string(pool[off : off+ln]), nil
}

// Load deserializes a *graph.Graph from data. Each step carries the
// DepfileInputs recorded in the cache verbatim; Load never re-reads
// depfiles from disk.
func Load(data []byte) (*graph.Graph, error) {
	if len(data) < headerSize {
		return nil, cbeerrors.New(cbeerrors.BinaryCacheInvalid, "file shorter than header")
	}
	if string(data[:8]) != magic {
		return nil, cbeerrors.New(cbeerrors.BinaryCacheInvalid, "magic mismatch")
	}

	c := &cursor{data: data, pos: 8}
	numDefs, err := c.u64()
	if err != nil {
		return nil, err
	}
	numNodes, err := c.u64()
	if err != nil {
		return nil, err
	}
	numSteps, err := c.u64()
	if err != nil {
		return nil, err
	}
	stringsSize, err := c.u64()
	if err != nil {
		return nil, err
	}
	if stringsSize > uint64(len(data)) {
		return nil, cbeerrors.New(cbeerrors.BinaryCacheInvalid, "strings_size exceeds file size")
	}
	poolBase := uint64(len(data)) - stringsSize
	pool := data[poolBase:]
	// Records must fit entirely before the pool; a truncated file shifts
	// the pool base into the record section and runs the cursor short.
	c.data = data[:poolBase]

	g := graph.New(nil)

	for i := uint64(0); i < numDefs; i++ {
		key, err := c.stringRef(pool)
		if err != nil {
			return nil, err
		}
		val, err := c.stringRef(pool)
		if err != nil {
			return nil, err
		}
		g.AddDefinition(key, val)
	}

	nodes := make([]graph.Node, numNodes)
	for i := uint64(0); i < numNodes; i++ {
		path, err := c.stringRef(pool)
		if err != nil {
			return nil, err
		}
		stepID, err := c.u64()
		if err != nil {
			return nil, err
		}
		numEdges, err := c.u64()
		if err != nil {
			return nil, err
		}
		var edges []int
		if numEdges > 0 {
			edges = make([]int, numEdges)
		}
		for j := range edges {
			e, err := c.u64()
			if err != nil {
				return nil, err
			}
			edges[j] = int(e)
		}
		sid := -1
		if stepID != none {
			sid = int(stepID)
		}
		nodes[i] = graph.Node{Path: path, OutEdges: edges, StepID: sid}
	}

	steps := make([]graph.BuildStep, numSteps)
	for i := uint64(0); i < numSteps; i++ {
		tool, err := c.stringRef(pool)
		if err != nil {
			return nil, err
		}
		inputsRaw, err := c.stringRef(pool)
		if err != nil {
			return nil, err
		}
		output, err := c.stringRef(pool)
		if err != nil {
			return nil, err
		}
		depfileCount, err := c.u64()
		if err != nil {
			return nil, err
		}
		step := graph.BuildStep{
			Tool:      tool,
			InputsRaw: inputsRaw,
			Output:    output,
		}
		step.Inputs = splitInputsForLoad(inputsRaw)
		if depfileCount != none {
			step.HasDepfile = true
			step.DepfileInputs = make([]string, depfileCount)
			for j := uint64(0); j < depfileCount; j++ {
				dep, err := c.stringRef(pool)
				if err != nil {
					return nil, err
				}
				step.DepfileInputs[j] = dep
			}
		}
		steps[i] = step
	}

	if uint64(c.pos) != poolBase {
		return nil, cbeerrors.New(cbeerrors.BinaryCacheInvalid, "record section does not end at string pool")
	}

	g.LoadRaw(nodes, steps)

	if err := g.Validate(); err != nil {
		return nil, cbeerrors.Wrap(cbeerrors.BinaryCacheInvalid, "graph invariant violated on load", err)
	}
	return g, nil
}

func splitInputsForLoad(raw string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' {
			if start >= 0 && i > start {
				out = append(out, raw[start:i])
			}
			start = -1
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}
