package cmdbuilder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/catalystbuild/catalyst/internal/graph"
	"github.com/catalystbuild/catalyst/internal/statcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefs(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(nil)
	g.AddDefinition("cc", "gcc")
	g.AddDefinition("cxx", "g++")
	g.AddDefinition("cflags", "-O2 -Wall")
	g.AddDefinition("cxxflags", "-O2 -std=c++20")
	g.AddDefinition("ldflags", "-L/usr/lib")
	g.AddDefinition("ldlibs", "-lm")
	return g
}

func TestBuild_CC(t *testing.T) {
	b := New(newDefs(t), statcache.New(), "manifest")
	argv, err := b.Build(graph.BuildStep{Tool: "cc", Inputs: []string{"a.c"}, Output: "a.o"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gcc", "-O2", "-Wall", "-MMD", "-MF", "a.o.d", "-c", "a.c", "-o", "a.o"}, argv)
}

func TestBuild_CXX(t *testing.T) {
	b := New(newDefs(t), statcache.New(), "manifest")
	argv, err := b.Build(graph.BuildStep{Tool: "cxx", Inputs: []string{"a.cpp"}, Output: "a.o"})
	require.NoError(t, err)
	assert.Equal(t, []string{"g++", "-O2", "-std=c++20", "-MMD", "-MF", "a.o.d", "-c", "a.cpp", "-o", "a.o"}, argv)
}

func TestBuild_LD_Small(t *testing.T) {
	b := New(newDefs(t), statcache.New(), "manifest")
	argv, err := b.Build(graph.BuildStep{Tool: "ld", Inputs: []string{"a.o", "b.o"}, Output: "app"})
	require.NoError(t, err)
	assert.Equal(t, []string{"g++", "a.o", "b.o", "-o", "app", "-L/usr/lib", "-lm"}, argv)
}

func TestBuild_SLD(t *testing.T) {
	b := New(newDefs(t), statcache.New(), "manifest")
	argv, err := b.Build(graph.BuildStep{Tool: "sld", Inputs: []string{"a.o"}, Output: "libfoo.so"})
	require.NoError(t, err)
	assert.Equal(t, []string{"g++", "-shared", "a.o", "-o", "libfoo.so"}, argv)
}

func TestBuild_AR(t *testing.T) {
	b := New(newDefs(t), statcache.New(), "manifest")
	argv, err := b.Build(graph.BuildStep{Tool: "ar", Inputs: []string{"a.o", "b.o"}, Output: "lib.a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ar", "rcs", "lib.a", "a.o", "b.o"}, argv)
}

func TestBuild_LD_ResponseFile(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "catalyst.build")
	require.NoError(t, os.WriteFile(manifestPath, []byte("x"), 0o644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	inputs := make([]string, 60)
	for i := range inputs {
		inputs[i] = filepath.Join("obj", "f.o")
	}

	b := New(newDefs(t), statcache.New(), manifestPath)
	argv, err := b.Build(graph.BuildStep{Tool: "ld", Inputs: inputs, Output: "app"})
	require.NoError(t, err)

	assert.Equal(t, "g++", argv[0])
	assert.Equal(t, "@app.rsp", argv[1])

	content, err := os.ReadFile("app.rsp")
	require.NoError(t, err)
	assert.Contains(t, string(content), filepath.Join("obj", "f.o"))
}

func TestBuild_LD_ReusesFreshResponseFile(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "catalyst.build")
	require.NoError(t, os.WriteFile(manifestPath, []byte("x"), 0o644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	require.NoError(t, os.WriteFile("app.rsp", []byte("stale-content\n"), 0o644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes("app.rsp", future, future))

	inputs := make([]string, 60)
	for i := range inputs {
		inputs[i] = "f.o"
	}

	b := New(newDefs(t), statcache.New(), manifestPath)
	_, err = b.Build(graph.BuildStep{Tool: "ld", Inputs: inputs, Output: "app"})
	require.NoError(t, err)

	content, err := os.ReadFile("app.rsp")
	require.NoError(t, err)
	assert.Equal(t, "stale-content\n", string(content))
}
