package creditline

import "sync"

// lockManager hands out one mutex per credit line id so that mutating
// operations on the same line are serialized while different lines proceed
// independently. Mutexes are never released from the map; the set of live
// credit lines is small enough that this does not matter.
type lockManager struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockManager() *lockManager {
	return &lockManager{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for id and returns the matching unlock function.
func (m *lockManager) Lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}
