package pkg

import "sync"

// KeyedMutex hands out one RWMutex per key. An entry lives only while someone holds
// or waits for it.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.RWMutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyLock)}
}

func (that *KeyedMutex) acquire(key string) *keyLock {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock, ok := that.locks[key]
	if !ok {
		lock = &keyLock{}
		that.locks[key] = lock
	}
	lock.refs++

	return lock
}

func (that *KeyedMutex) release(key string, lock *keyLock) {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(that.locks, key)
	}
}

// Lock takes the exclusive lock of key and returns its release function.
func (that *KeyedMutex) Lock(key string) func() {
	lock := that.acquire(key)
	lock.Lock()

	return func() {
		lock.Unlock()
		that.release(key, lock)
	}
}

// RLock takes the shared lock of key and returns its release function.
func (that *KeyedMutex) RLock(key string) func() {
	lock := that.acquire(key)
	lock.RLock()

	return func() {
		lock.RUnlock()
		that.release(key, lock)
	}
}

// Len reports how many keys are currently held or awaited.
func (that *KeyedMutex) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
