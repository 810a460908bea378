package services

import "sync"

// slotLocks hands out one mutex per (room, day) so admissions for the same
// slot serialize while unrelated slots proceed in parallel. Entries are tiny
// and bounded by rooms x days seen, so the table never evicts.
type slotLocks struct {
	mu    sync.Mutex
	table map[string]*sync.Mutex
}

func newSlotLocks() *slotLocks {
	return &slotLocks{table: make(map[string]*sync.Mutex)}
}

func (l *slotLocks) get(roomID, date string) *sync.Mutex {
	key := roomID + "|" + date
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.table[key]
	if !ok {
		m = &sync.Mutex{}
		l.table[key] = m
	}
	return m
}
