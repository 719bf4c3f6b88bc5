package utils

import "sync"

// KeyedMutex serializes work per key while distinct keys proceed in parallel.
// Lookups go through sync.Map, so callers for different keys share no lock.
// Entries are never dropped; the map grows with the number of distinct keys.
type KeyedMutex[K comparable] struct {
	locks sync.Map
}

// Lock acquires the mutex for key and returns its unlock function
func (m *KeyedMutex[K]) Lock(key K) func() {
	value, ok := m.locks.Load(key)
	if !ok {
		value, _ = m.locks.LoadOrStore(key, &sync.Mutex{})
	}
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
