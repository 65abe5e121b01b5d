package preview

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
)

// DefaultMemoSize bounds a memo created with a non-positive size.
const DefaultMemoSize = 128

// Key hashes the canonical JSON encoding of the parts. encoding/json sorts
// map keys, so equal inputs always produce the same key.
func Key(parts ...any) (string, error) {
	payload, err := json.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("preview: encode memo key: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Memo is a bounded cache that evicts the oldest entry first. It is safe for
// concurrent use.
type Memo[V any] struct {
	mu      sync.Mutex
	size    int
	order   []string
	entries map[string]V
}

// NewMemo returns a memo holding at most size entries.
func NewMemo[V any](size int) *Memo[V] {
	if size <= 0 {
		size = DefaultMemoSize
	}
	return &Memo[V]{size: size, entries: make(map[string]V, size)}
}

// Get returns the value stored under key.
func (m *Memo[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok
}

// Put stores value under key, evicting the oldest entry when full.
func (m *Memo[V]) Put(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; exists {
		m.entries[key] = value
		return
	}
	if len(m.order) >= m.size {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	m.order = append(m.order, key)
	m.entries[key] = value
}

// Len reports how many entries are cached.
func (m *Memo[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
