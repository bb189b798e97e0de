// Package storage provides the object store holding uploaded résumé files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("object not found")

// Object is a stored file.
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// ObjectStore reads and writes objects by key.
type ObjectStore interface {
	Get(ctx context.Context, key string) (*Object, error)
	Put(ctx context.Context, obj *Object) error
	Delete(ctx context.Context, key string) error
}

// Error represents a failed object store operation.
type Error struct {
	Op    string
	Key   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Memory is an in-process ObjectStore.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]Object
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]Object)}
}

// Get returns a copy of the object stored under key.
func (m *Memory) Get(_ context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, &Error{Op: "get", Key: key, Cause: ErrNotFound}
	}
	obj.Data = append([]byte(nil), obj.Data...)
	return &obj, nil
}

// Put stores a copy of obj.
func (m *Memory) Put(_ context.Context, obj *Object) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *obj
	stored.Data = append([]byte(nil), obj.Data...)
	m.objects[obj.Key] = stored
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	return nil
}
