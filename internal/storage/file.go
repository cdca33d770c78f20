package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSlot keeps one file per key inside a data directory. It is the default
// backend: no external process, human-inspectable state, atomic writes via
// temp file + rename.
type FileSlot struct {
	dir string
}

// NewFileSlot creates the data directory when needed and returns the slot.
func NewFileSlot(dir string) (*FileSlot, error) {
	if dir == "" {
		return nil, errors.New("storage dir must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &FileSlot{dir: dir}, nil
}

// Get reads the file backing key. A missing file means the key was never
// written and is not an error.
func (s *FileSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes value to a temp file in the same directory and renames it over
// the target, so readers never observe a partial write.
func (s *FileSlot) Set(_ context.Context, key string, value []byte) error {
	target := s.path(key)

	tmp, err := os.CreateTemp(s.dir, "."+sanitizeKey(key)+"-*")
	if err != nil {
		return fmt.Errorf("create temp for slot %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit slot %s: %w", key, err)
	}
	return nil
}

// Close is a no-op: files are closed after every operation.
func (s *FileSlot) Close() error { return nil }

func (s *FileSlot) path(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}

// sanitizeKey maps the slot key onto a safe file name.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, key)
}
