package kv

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// File keeps all keys in a single JSON object on disk. Reads and writes hold
// an advisory lock on Path + ".lock" so separate processes never see a
// half-written file. The file holds the key/value object itself, not File.
type File struct {
	Mappings map[string]string
	Path     string
	mu       sync.RWMutex
	flk      *flock.Flock
	pending  map[string]string
	dirty    bool
}

func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("file store needs a path")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	f := &File{
		Mappings: make(map[string]string),
		Path:     path,
		flk:      flock.New(path + ".lock"),
		pending:  make(map[string]string),
	}

	if _, err := os.Stat(path); err == nil {
		if err := f.Load(); err != nil {
			log.Printf("Warning: could not read %s, starting empty: %v", path, err)
			f.Mappings = make(map[string]string)
		}
	}
	return f, nil
}

// Load replaces the in-memory mappings with the file contents. Keys set
// but not yet saved keep their new values.
func (f *File) Load() error {
	if err := f.flk.RLock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", f.Path, err)
	}
	defer f.flk.Unlock()

	mappings, err := f.read()
	if err != nil {
		return err
	}

	f.mu.Lock()
	for k, v := range f.pending {
		mappings[k] = v
	}
	f.Mappings = mappings
	f.mu.Unlock()
	return nil
}

func (f *File) read() (map[string]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	mappings := make(map[string]string)
	if err := json.NewDecoder(file).Decode(&mappings); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.Path, err)
	}
	return mappings, nil
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.Mappings[key]
	return v, ok, nil
}

// Set stores value under key and writes the file if anything changed.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	if cur, exists := f.Mappings[key]; !exists || cur != value {
		f.Mappings[key] = value
		f.pending[key] = value
		f.dirty = true
	}
	f.mu.Unlock()
	return f.Save()
}

// Save writes the keys set since the last save. Keys written by other
// processes in the meantime are kept.
func (f *File) Save() error {
	f.mu.RLock()
	if !f.dirty {
		f.mu.RUnlock()
		return nil
	}
	f.mu.RUnlock()

	if err := f.flk.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", f.Path, err)
	}
	defer f.flk.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	onDisk, err := f.read()
	if err != nil {
		onDisk = make(map[string]string)
	}
	for k, v := range f.pending {
		onDisk[k] = v
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(onDisk); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	f.Mappings = onDisk
	f.pending = make(map[string]string)
	f.dirty = false
	return nil
}

func (f *File) Close() error {
	if err := f.Save(); err != nil {
		return err
	}
	return f.flk.Close()
}
