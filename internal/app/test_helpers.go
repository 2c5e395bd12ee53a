package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest writes manifest into a fresh temp directory and returns an
// App configured to build there, along with a buffer capturing its
// output and logs.
func SetupAppTest(t *testing.T, manifest string) (*App, *SafeBuffer) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalyst.build"), []byte(manifest), 0o644))

	out := &SafeBuffer{}
	cfg, err := NewConfig(Config{
		WorkingDir: dir,
		LogLevel:   "debug",
		LogFormat:  "text",
		NoColor:    true,
	})
	require.NoError(t, err)

	return NewApp(out, cfg), out
}
