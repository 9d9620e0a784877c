package services

import "sync"

// roomLocker hands out one mutex per room id. Booking and checkout hold the room's mutex
// across their whole transaction, so an overlap check can never interleave with another
// writer on the same room even when the backing store has no row locks.
type roomLocker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newRoomLocker() *roomLocker {
	return &roomLocker{locks: make(map[uint]*sync.Mutex)}
}

func (l *roomLocker) Lock(roomID uint) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m
}

// bookingLocks serializes the book/checkout critical sections per room.
var bookingLocks = newRoomLocker()
