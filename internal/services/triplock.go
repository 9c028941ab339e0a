package services

import "sync"

// TripLocks serializes booking admissions per trip within this
// process: the seat-conflict check and the ledger write must not
// interleave for the same trip. Admissions on different trips run
// concurrently. Cross-process safety comes from the MySQL unique key
// and named lock in the ledger package.
type TripLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewTripLocks() *TripLocks {
	return &TripLocks{locks: map[int64]*sync.Mutex{}}
}

// Acquire locks the mutex for tripID and returns its release func.
// Lock entries are kept for the process lifetime; the trip count is
// bounded by the timetable.
func (t *TripLocks) Acquire(tripID int64) func() {
	t.mu.Lock()
	l, ok := t.locks[tripID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[tripID] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
