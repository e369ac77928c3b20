package kook

import "sync"

// SeqStore tracks the highest event sequence number seen per bot. The value
// rides on every heartbeat so the server knows what the client has consumed.
type SeqStore struct {
	mu sync.Mutex
	sn map[string]int64
}

// NewSeqStore creates an empty sequence store.
func NewSeqStore() *SeqStore {
	return &SeqStore{sn: make(map[string]int64)}
}

// Update records sn for selfID if it is higher than the stored value and
// returns the current value. Out-of-order frames never move the counter
// backwards.
func (s *SeqStore) Update(selfID string, sn int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sn > s.sn[selfID] {
		s.sn[selfID] = sn
	}
	return s.sn[selfID]
}

// Get returns the highest sequence number seen for selfID.
func (s *SeqStore) Get(selfID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sn[selfID]
}

// Reset clears the counter for selfID. Called on disconnect; the next
// connection starts a fresh sequence.
func (s *SeqStore) Reset(selfID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sn, selfID)
}
