// Package jsonfile implements the gateway's stores as flat JSON files,
// one file per collection. Every mutation is a whole-collection
// read-modify-write serialized by a per-store mutex, and the file is
// replaced atomically so a crash mid-write never leaves a truncated store.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// collection is a file-backed list of records. All access goes through
// Load and Update, which hold the mutex for the full read-modify-write.
type collection[T any] struct {
	path string
	mu   sync.Mutex
}

// newCollection opens the file, creating it with an empty list when absent.
func newCollection[T any](path string) (*collection[T], error) {
	c := &collection[T]{path: path}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := writeFileAtomic(path, []T{}); err != nil {
			return nil, fmt.Errorf("initializing %s: %w", filepath.Base(path), err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}

	return c, nil
}

func (c *collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readLocked()
}

// Update applies fn to the current contents and persists the result,
// all under the store's mutex.
func (c *collection[T]) Update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.readLocked()
	if err != nil {
		return err
	}

	items, err = fn(items)
	if err != nil {
		return err
	}

	return writeFileAtomic(c.path, items)
}

func (c *collection[T]) readLocked() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(c.path), err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(c.path), err)
	}
	return items, nil
}

// writeFileAtomic marshals v and renames a temp file over the target, so
// readers never observe a partially written store.
func writeFileAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", filepath.Base(path), err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
