package statcache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileInfo struct {
	modTime time.Time
}

func (f fakeFileInfo) Name() string       { return "fake" }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0 }
func (f fakeFileInfo) ModTime() time.Time { return f.modTime }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

func TestGet_CachesAfterFirstCall(t *testing.T) {
	calls := 0
	want := time.Now()
	c := NewWithStat(func(path string) (os.FileInfo, error) {
		calls++
		return fakeFileInfo{modTime: want}, nil
	})

	got, exists := c.Get("a.c")
	require.True(t, exists)
	assert.True(t, got.Equal(want))

	_, _ = c.Get("a.c")
	_, _ = c.Get("a.c")
	assert.Equal(t, 1, calls, "second and third Get must not re-stat")
}

func TestGet_MissingPath(t *testing.T) {
	c := NewWithStat(func(path string) (os.FileInfo, error) {
		return nil, os.ErrNotExist
	})

	_, exists := c.Get("missing.o")
	assert.False(t, exists)
}

func TestGet_DoesNotNormalizePaths(t *testing.T) {
	calls := map[string]int{}
	c := NewWithStat(func(path string) (os.FileInfo, error) {
		calls[path]++
		return fakeFileInfo{modTime: time.Now()}, nil
	})

	c.Get("./a.c")
	c.Get("a.c")
	assert.Equal(t, 1, calls["./a.c"])
	assert.Equal(t, 1, calls["a.c"])
}

func TestChangedSince(t *testing.T) {
	base := time.Unix(1000, 0)
	t.Run("strictly newer is changed", func(t *testing.T) {
		c := NewWithStat(func(string) (os.FileInfo, error) {
			return fakeFileInfo{modTime: base.Add(time.Second)}, nil
		})
		assert.True(t, c.ChangedSince("x", base))
	})

	t.Run("equal mtime is changed, tie-break pessimistic", func(t *testing.T) {
		c := NewWithStat(func(string) (os.FileInfo, error) {
			return fakeFileInfo{modTime: base}, nil
		})
		assert.True(t, c.ChangedSince("x", base))
	})

	t.Run("strictly older is not changed", func(t *testing.T) {
		c := NewWithStat(func(string) (os.FileInfo, error) {
			return fakeFileInfo{modTime: base.Add(-time.Second)}, nil
		})
		assert.False(t, c.ChangedSince("x", base))
	})

	t.Run("missing path is changed", func(t *testing.T) {
		c := NewWithStat(func(string) (os.FileInfo, error) {
			return nil, os.ErrNotExist
		})
		assert.True(t, c.ChangedSince("x", base))
	})
}

func TestInvalidate(t *testing.T) {
	calls := 0
	c := NewWithStat(func(string) (os.FileInfo, error) {
		calls++
		return fakeFileInfo{modTime: time.Now()}, nil
	})

	c.Get("a.o")
	c.Invalidate("a.o")
	c.Get("a.o")
	assert.Equal(t, 2, calls)
}
