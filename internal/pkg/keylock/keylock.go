// Package keylock provides per-key mutual exclusion. The punch and employee
// services share one registry so kiosk punches and admin shift edits for the
// same employee serialize, while different employees never contend.
package keylock

import "sync"

type KeyLock struct {
	locks sync.Map
}

func New() *KeyLock {
	return &KeyLock{}
}

// Acquire locks the mutex for key and returns the matching unlock function.
func (k *KeyLock) Acquire(key string) func() {
	mu, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
