// Package kv provides the single-slot key-value persistence used for the
// link snapshot. Values are opaque strings, written wholesale.
package kv

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kv: store closed")

// Store is a durable string-valued key-value store.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// Config selects a backend.
type Config struct {
	Type string // memory, file or sqlite
	Path string // directory for file, database path (or directory) for sqlite
}

// Open creates the backend named by cfg.Type.
func Open(cfg Config) (Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemory(), nil
	case "file", "":
		return NewFile(cfg.Path)
	case "sqlite":
		path := cfg.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "gobuilding.db")
		}
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}

// Memory keeps values in process memory.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error { return nil }
