package lock

import (
	"context"
	"sync"
)

// KeyedMutex is the single-instance fallback used when Redis is not configured.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

func (k *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	acquired := make(chan struct{})
	go func() {
		e.mu.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-ctx.Done():
		// The goroutine still takes the lock eventually; hand it straight back.
		go func() {
			<-acquired
			k.unlock(key, e)
		}()
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() { once.Do(func() { k.unlock(key, e) }) }, nil
}

func (k *KeyedMutex) unlock(key string, e *entry) {
	e.mu.Unlock()

	k.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
}

func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.locks)
}
