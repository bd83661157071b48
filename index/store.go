package index

import (
	"bytes"
	"fmt"
	"sync"
)

// StoreReader provides random access to a built index.
type StoreReader interface {
	// Get must return a value for a given key or nil if not found
	Get(key []byte) (value []byte, err error)
	// Close implements the io.Closer interface
	Close() error
}

// StoreWriter receives the entries of an index being built.
type StoreWriter interface {
	// Put adds a key/value pair to the store, keys are
	// passed in ascending order
	Put(key, value []byte) error
	// Close implements the io.Closer interface
	Close() error
}

// InMemStore implements StoreReader + StoreWriter in memory, suitable for
// tests and indices built on the fly.
type InMemStore struct {
	data map[string][]byte
	last []byte
	mu   sync.RWMutex
}

// NewInMemStore inits an InMemStore
func NewInMemStore() *InMemStore {
	return &InMemStore{data: make(map[string][]byte)}
}

// Len returns the number of stored keys
func (m *InMemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}

// Get implements StoreReader
func (m *InMemStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.data[string(key)], nil
}

// Put implements StoreWriter. Like SST table writers, it
// rejects keys that are not greater than the previous one.
func (m *InMemStore) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.last != nil && bytes.Compare(key, m.last) <= 0 {
		return fmt.Errorf("index: attempted an out-of-order put, %q must be > %q", key, m.last)
	}
	m.last = append(m.last[:0], key...)
	m.data[string(key)] = append([]byte{}, value...)
	return nil
}

// Close implements StoreReader + StoreWriter
func (*InMemStore) Close() error { return nil }
