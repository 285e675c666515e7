// Package store provides the durable key/value port behind every persisted
// abcinema collection.
package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by KV.Get for a key that was never written.
var ErrNotFound = errors.New("store: key not found")

// KV is the key/value port. A Set replaces the whole value for a key in one
// operation; there are no partial writes.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Memory is an in-process KV used by tests and by callers that want a
// throwaway session. Failures can be injected to exercise degraded paths.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte

	// FailReads makes every Get return an error.
	FailReads bool
	// FailWrites makes every Set and Delete return an error.
	FailWrites bool

	writes int
}

var errInjected = errors.New("store: injected failure")

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return nil, errInjected
	}
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errInjected
	}
	m.values[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errInjected
	}
	delete(m.values, key)
	m.writes++
	return nil
}

// Writes reports how many successful Set/Delete calls were made.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Raw seeds a value without counting it as a write, e.g. to plant corrupt data.
func (m *Memory) Raw(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = []byte(value)
}
