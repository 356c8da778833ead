package library

import "sync"

// DefaultRecentCapacity is how many check-ins the recent log keeps.
const DefaultRecentCapacity = 10

// RecentCheckIns is a bounded log of check-in snapshots. It lives only for the
// session and is never persisted.
type RecentCheckIns struct {
	mu       sync.Mutex
	capacity int
	entries  []CheckInRecord // oldest first
}

func NewRecentCheckIns(capacity int) *RecentCheckIns {
	if capacity < 1 {
		capacity = DefaultRecentCapacity
	}
	return &RecentCheckIns{capacity: capacity, entries: make([]CheckInRecord, 0, capacity)}
}

// Push appends rec, evicting the oldest entry when full.
func (r *RecentCheckIns) Push(rec CheckInRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:len(r.entries)-1]
	}
	r.entries = append(r.entries, rec)
}

// Entries returns the log newest first.
func (r *RecentCheckIns) Entries() []CheckInRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CheckInRecord, len(r.entries))
	for i, rec := range r.entries {
		out[len(r.entries)-1-i] = rec
	}
	return out
}

func (r *RecentCheckIns) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *RecentCheckIns) Capacity() int { return r.capacity }
