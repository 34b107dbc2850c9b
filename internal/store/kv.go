// Package store owns durable state: a pluggable key-value store holding
// the JSON-encoded collections, and the DataStore that keeps the in-memory
// working copy and persists it back after every mutation.
package store

import "sync"

// Keys under which the collections and auxiliary state are persisted.
const (
	KeyPatients  = "patients"
	KeyIncidents = "incidents"
	KeyAuthUser  = "authUser"
	KeyAuditLog  = "auditLog"

	KeyEmailSubscribed = "adminEmailSubscribed"
	KeyPrivacyAccepted = "adminPrivacyAccepted"
)

// KV is the persistence boundary. Implementations must be safe for
// concurrent use.
type KV interface {
	// Get returns the value for key; the second result is false when the
	// key has never been written.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// MemKV is a map-backed KV for tests and ephemeral runs.
type MemKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

func (m *MemKV) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemKV) Close() error { return nil }
