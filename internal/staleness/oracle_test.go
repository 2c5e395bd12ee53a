package staleness

import (
	"os"
	"testing"
	"time"

	"github.com/catalystbuild/catalyst/internal/graph"
	"github.com/catalystbuild/catalyst/internal/statcache"
	"github.com/stretchr/testify/assert"
)

type fakeInfo struct{ t time.Time }

func (f fakeInfo) Name() string       { return "f" }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() os.FileMode  { return 0 }
func (f fakeInfo) ModTime() time.Time { return f.t }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() any           { return nil }

func newCache(times map[string]time.Time) *statcache.Cache {
	return statcache.NewWithStat(func(path string) (os.FileInfo, error) {
		t, ok := times[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return fakeInfo{t: t}, nil
	})
}

func TestNeedsRebuild_MissingOutput(t *testing.T) {
	cache := newCache(map[string]time.Time{})
	o := New(cache, "manifest")
	step := graph.BuildStep{Output: "a.o", Inputs: []string{"a.c"}}
	assert.True(t, o.NeedsRebuild(step))
}

func TestNeedsRebuild_S5_ManifestNewerThanOutput(t *testing.T) {
	base := time.Unix(1000, 0)
	cache := newCache(map[string]time.Time{
		"a.o":      base,
		"manifest": base.Add(time.Second),
		"a.c":      base.Add(-time.Hour),
	})
	o := New(cache, "manifest")
	step := graph.BuildStep{Output: "a.o", Inputs: []string{"a.c"}}
	assert.True(t, o.NeedsRebuild(step))
}

func TestNeedsRebuild_DepfileInputNewer(t *testing.T) {
	base := time.Unix(1000, 0)
	cache := newCache(map[string]time.Time{
		"a.o":      base,
		"manifest": base.Add(-time.Hour),
		"a.c":      base.Add(-time.Hour),
		"foo.h":    base.Add(time.Second),
	})
	o := New(cache, "manifest")
	step := graph.BuildStep{Output: "a.o", Inputs: []string{"a.c"}, HasDepfile: true, DepfileInputs: []string{"foo.h"}}
	assert.True(t, o.NeedsRebuild(step))
}

func TestNeedsRebuild_ParsedInputNewer(t *testing.T) {
	base := time.Unix(1000, 0)
	cache := newCache(map[string]time.Time{
		"a.o":      base,
		"manifest": base.Add(-time.Hour),
		"a.c":      base.Add(time.Second),
	})
	o := New(cache, "manifest")
	step := graph.BuildStep{Output: "a.o", Inputs: []string{"a.c"}}
	assert.True(t, o.NeedsRebuild(step))
}

func TestNeedsRebuild_MissingParsedInputForcesRebuild(t *testing.T) {
	base := time.Unix(1000, 0)
	cache := newCache(map[string]time.Time{
		"a.o":      base,
		"manifest": base.Add(-time.Hour),
		// "a.c" deliberately absent: a removed source must still force
		// a rebuild, not be silently treated as unchanged.
	})
	o := New(cache, "manifest")
	step := graph.BuildStep{Output: "a.o", Inputs: []string{"a.c"}}
	assert.True(t, o.NeedsRebuild(step))
}

func TestNeedsRebuild_MissingDepfileInputForcesRebuild(t *testing.T) {
	base := time.Unix(1000, 0)
	cache := newCache(map[string]time.Time{
		"a.o":      base,
		"manifest": base.Add(-time.Hour),
		"a.c":      base.Add(-time.Hour),
		// "foo.h" deliberately absent: a removed header a depfile names
		// must still force a rebuild.
	})
	o := New(cache, "manifest")
	step := graph.BuildStep{Output: "a.o", Inputs: []string{"a.c"}, HasDepfile: true, DepfileInputs: []string{"foo.h"}}
	assert.True(t, o.NeedsRebuild(step))
}

func TestNeedsRebuild_UpToDate(t *testing.T) {
	base := time.Unix(1000, 0)
	cache := newCache(map[string]time.Time{
		"a.o":      base,
		"manifest": base.Add(-time.Hour),
		"a.c":      base.Add(-time.Hour),
	})
	o := New(cache, "manifest")
	step := graph.BuildStep{Output: "a.o", Inputs: []string{"a.c"}}
	assert.False(t, o.NeedsRebuild(step))
}
