//go:build !linux && !darwin

package mmapfile

import "os"

// Open falls back to a plain read on platforms without the unix mmap
// syscalls wired up (notably Windows, which has its own mapping API not
// exercised by this build).
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{data: data, closer: func() error { return nil }}, nil
}
