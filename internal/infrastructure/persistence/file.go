package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var slotName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// FileSlots writes each slot to <dir>/<name>.json. Saves go through a
// temporary file and a rename so a crash never leaves a half-written slot.
type FileSlots struct {
	dir string
	mu  sync.Mutex
}

func NewFileSlots(dir string) (*FileSlots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSlots{dir: dir}, nil
}

func (f *FileSlots) Load(_ context.Context, name string) ([]byte, bool, error) {
	path, err := f.path(name)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %s: %w", name, err)
	}
	return data, true, nil
}

func (f *FileSlots) Save(_ context.Context, name string, data []byte) error {
	path, err := f.path(name)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace slot %s: %w", name, err)
	}
	return nil
}

func (f *FileSlots) path(name string) (string, error) {
	if !slotName.MatchString(name) {
		return "", fmt.Errorf("invalid slot name %q", name)
	}
	return filepath.Join(f.dir, name+".json"), nil
}
