package services

import "sync"

// KeyedMutex serializes work per string key. Mutating operations on the
// same auction id take its lock for their whole read-modify-write, which is
// what prevents lost bids and double closes.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
// Per-key mutexes are never removed; the set of auction ids a process sees
// is bounded by the auctions it touches.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
