package kvpkg

import (
	"context"
	"sync"
)

// MemStore implements Store with an in-process map. A single mutex
// serializes commits, which trivially makes them all-or-nothing. It backs
// the memory driver and tests.
type MemStore struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]memEntry
}

type memEntry struct {
	value   []byte
	version int64
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{
		namespaces: make(map[string]map[string]memEntry),
	}
}

// Get reads one key. A missing key is reported as Version 0, not an error.
func (s *MemStore) Get(_ context.Context, namespace, key string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := Entry{Namespace: namespace, Key: key}

	entry, ok := s.namespaces[namespace][key]
	if !ok {
		return e, nil
	}

	e.Value = append([]byte(nil), entry.value...)
	e.Version = entry.version

	return e, nil
}

// ListKeys scans all keys of a namespace in map order.
func (s *MemStore) ListKeys(_ context.Context, namespace string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := []string{}
	for key := range s.namespaces[namespace] {
		keys = append(keys, key)
	}

	return keys, nil
}

// Commit verifies every check against the current versions and, only if all
// hold, applies every set.
func (s *MemStore) Commit(_ context.Context, checks []Check, sets []Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range checks {
		var current int64
		if entry, ok := s.namespaces[c.Namespace][c.Key]; ok {
			current = entry.version
		}

		if current != c.Version {
			return ErrCommitConflict
		}
	}

	for _, set := range sets {
		ns, ok := s.namespaces[set.Namespace]
		if !ok {
			ns = make(map[string]memEntry)
			s.namespaces[set.Namespace] = ns
		}

		ns[set.Key] = memEntry{
			value:   append([]byte(nil), set.Value...),
			version: ns[set.Key].version + 1,
		}
	}

	return nil
}
