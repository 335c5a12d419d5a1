package fault

import "sync/atomic"

// spinRWLock is a read-preferring reader/writer lock that never sleeps:
// contended acquisitions burn CPU until the lock is free. It is the
// "non-sleeping lock" side of the SCHEDULING_WHILE_ATOMIC violation.
type spinRWLock struct {
	// state is the number of active readers, or -1 when write-locked.
	state atomic.Int32
}

func (l *spinRWLock) RLock() {
	for {
		s := l.state.Load()
		if s >= 0 && l.state.CompareAndSwap(s, s+1) {
			return
		}
	}
}

func (l *spinRWLock) RUnlock() {
	l.state.Add(-1)
}

func (l *spinRWLock) Lock() {
	for !l.state.CompareAndSwap(0, -1) {
	}
}

func (l *spinRWLock) Unlock() {
	l.state.Store(0)
}
