package tipping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSnapshot is returned by a Backend that has never been written.
var ErrNoSnapshot = errors.New("no snapshot")

// Backend stores the serialized aggregate.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
}

func encodeData(data Data) ([]byte, error) {
	return json.Marshal(data)
}

func decodeData(payload []byte) (Data, error) {
	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return Data{}, err
	}
	data.normalize()
	return data, nil
}

// FileBackend keeps the snapshot in a single local JSON file.
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (f *FileBackend) Read(ctx context.Context) ([]byte, error) {
	payload, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return payload, nil
}

// Write replaces the file atomically so a crash never leaves half a snapshot.
func (f *FileBackend) Write(ctx context.Context, payload []byte) error {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
