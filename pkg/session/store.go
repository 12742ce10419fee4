// Package session implements the client-side session lifecycle: a small
// key-value store holding the credential material and an idle tracker that
// decides, at each guarded navigation, whether the session is still usable.
package session

import "sync"

// Keys the tracker and the API client read and write. LastActivity holds an
// epoch-milliseconds string.
const (
	KeyToken        = "token"
	KeyUser         = "user"
	KeyLastActivity = "lastActivity"
)

// Store abstracts the persisted session state so the tracker works against
// browser-local storage, a file, or memory alike.
type Store interface {
	Get(key string) string
	Set(key string, value string)
	Delete(key string)
	Clear()
}

// MemoryStore is the in-process Store used by CLIs and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *MemoryStore) Set(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[string]string{}
}
