package util

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadResource returns the contents of the file at path. The file is mapped
// read-only and copied out, so the returned slice stays valid after the
// mapping is released. An empty file yields nil.
func ReadResource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	data := make([]byte, len(m))
	copy(data, m)
	if err := m.Unmap(); err != nil {
		return nil, fmt.Errorf("unmap %s: %w", path, err)
	}
	return data, nil
}

// ReadResourceOr reads path, or returns fallback when path is empty.
func ReadResourceOr(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return ReadResource(path)
}
