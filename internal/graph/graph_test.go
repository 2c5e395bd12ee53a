package graph

import (
	"errors"
	"testing"

	"github.com/catalystbuild/catalyst/internal/cbeerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepfiles map[string][]byte

func (f fakeDepfiles) ReadDepfile(output string) ([]byte, bool, error) {
	data, ok := f[output]
	return data, ok, nil
}

func TestGetOrCreateNode_Idempotent(t *testing.T) {
	g := New(nil)
	a := g.GetOrCreateNode("a.c")
	b := g.GetOrCreateNode("a.c")
	assert.Equal(t, a, b)
	assert.Len(t, g.Nodes, 1)
}

func TestAddStep_S1_ParseAndTopo(t *testing.T) {
	g := New(nil)
	g.AddDefinition("cc", "gcc")

	_, err := g.AddStep(BuildStep{Tool: "cc", InputsRaw: "a.c", Inputs: []string{"a.c"}, Output: "a.o"})
	require.NoError(t, err)
	_, err = g.AddStep(BuildStep{Tool: "ld", InputsRaw: "a.o", Inputs: []string{"a.o"}, Output: "app"})
	require.NoError(t, err)

	require.Len(t, g.Nodes, 3)
	order, err := g.TopoSort()
	require.NoError(t, err)

	paths := make([]string, len(order))
	for i, idx := range order {
		paths[i] = g.Nodes[idx].Path
	}
	assert.Equal(t, []string{"a.c", "a.o", "app"}, paths)
}

func TestAddStep_S2_DuplicateProducer(t *testing.T) {
	g := New(nil)
	_, err := g.AddStep(BuildStep{Tool: "cc", Inputs: []string{"a.c"}, Output: "a.o"})
	require.NoError(t, err)

	_, err = g.AddStep(BuildStep{Tool: "cc", Inputs: []string{"other.c"}, Output: "a.o"})
	require.Error(t, err)

	var cerr *cbeerrors.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, cbeerrors.DuplicateProducer, cerr.Kind)
	assert.Equal(t, "a.o", cerr.Message)
}

func TestTopoSort_S3_Cycle(t *testing.T) {
	g := New(nil)
	_, err := g.AddStep(BuildStep{Tool: "cc", Inputs: []string{"b.o"}, Output: "a.o"})
	require.NoError(t, err)
	_, err = g.AddStep(BuildStep{Tool: "cc", Inputs: []string{"a.o"}, Output: "b.o"})
	require.NoError(t, err)

	_, err = g.TopoSort()
	require.Error(t, err)

	var cerr *cbeerrors.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, cbeerrors.Cycle, cerr.Kind)
}

func TestAddStep_S4_Depfile(t *testing.T) {
	depfiles := fakeDepfiles{
		"a.o": []byte("a.o: a.c inc/foo.h \\\n inc/bar.h\n"),
	}
	g := New(depfiles)

	_, err := g.AddStep(BuildStep{Tool: "cc", Inputs: []string{"a.c"}, Output: "a.o"})
	require.NoError(t, err)

	fooIdx, ok := g.NodeIndex("inc/foo.h")
	require.True(t, ok)
	barIdx, ok := g.NodeIndex("inc/bar.h")
	require.True(t, ok)
	outIdx, ok := g.NodeIndex("a.o")
	require.True(t, ok)

	assert.Contains(t, g.Nodes[fooIdx].OutEdges, outIdx)
	assert.Contains(t, g.Nodes[barIdx].OutEdges, outIdx)
	assert.True(t, g.Steps[g.Nodes[outIdx].StepID].HasDepfile)
}

func TestAddStep_LDHasNoDepfileIntegration(t *testing.T) {
	depfiles := fakeDepfiles{"app": []byte("app: ignored\n")}
	g := New(depfiles)

	_, err := g.AddStep(BuildStep{Tool: "ld", Inputs: []string{"a.o"}, Output: "app"})
	require.NoError(t, err)

	_, ok := g.NodeIndex("ignored")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	g := New(nil)
	_, err := g.AddStep(BuildStep{Tool: "cc", Inputs: []string{"a.c"}, Output: "a.o"})
	require.NoError(t, err)
	assert.NoError(t, g.Validate())
}

func TestDefinition_LastWriteWins(t *testing.T) {
	g := New(nil)
	g.AddDefinition("cc", "gcc")
	g.AddDefinition("cc", "clang")
	v, ok := g.Definition("cc")
	require.True(t, ok)
	assert.Equal(t, "clang", v)
}
