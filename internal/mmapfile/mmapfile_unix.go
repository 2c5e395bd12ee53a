//go:build linux || darwin

package mmapfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open memory-maps path read-only. Empty files cannot be mapped by
// mmap(2) on any unix; Open returns a File with an empty Bytes() slice
// and a no-op Close in that case instead of failing.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &File{data: nil, closer: func() error { return nil }}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: mmap %s: %w", path, err)
	}

	return &File{
		data: data,
		closer: func() error {
			return unix.Munmap(data)
		},
	}, nil
}
