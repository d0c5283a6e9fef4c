// Package session holds parsed transcripts between the upload request and
// the analysis requests that follow it, the way the original dashboard kept
// the working dataset in its UI session.
//
// The store is strictly in-memory and TTL-bounded: nothing survives process
// restart, entries expire after the configured lifetime, and expired entries
// are garbage-collected opportunistically during lookups. Stored collections
// are read-only after Put, so concurrent analysis requests can share them
// safely.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/go-chat-analytics/internal/domain"
)

// Report is one stored upload: the parsed collection plus the parse
// bookkeeping surfaced to the client.
type Report struct {
	ID           string
	Messages     domain.Collection
	SkippedLines int
	CreatedAt    time.Time
}

// Store is a TTL'd in-memory report registry keyed by report id.
// Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	reports  map[string]*Report
	cleanupN int
	now      func() time.Time // test seam
}

// gcEvery is the number of lookups between opportunistic sweeps of expired
// entries.
const gcEvery = 256

// NewStore creates a Store whose entries expire after ttl. Non-positive
// ttl values fall back to one hour.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		ttl:     ttl,
		reports: make(map[string]*Report),
		now:     time.Now,
	}
}

// Put stores a parsed collection and returns its fresh report id.
func (s *Store) Put(msgs domain.Collection, skipped int) *Report {
	r := &Report{
		ID:           uuid.NewString(),
		Messages:     msgs,
		SkippedLines: skipped,
		CreatedAt:    s.now(),
	}
	s.mu.Lock()
	s.reports[r.ID] = r
	s.mu.Unlock()
	return r
}

// Get returns the report for id, or false when it is unknown or expired.
// Expired entries are deleted on sight; a full sweep runs every gcEvery
// lookups so abandoned reports do not accumulate.
//
// The sweep runs BEFORE the requested entry is fetched so an expired report
// is evicted even when it is the one being asked for.
func (s *Store) Get(id string) (*Report, bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupN++
	if s.cleanupN >= gcEvery {
		for k, r := range s.reports {
			if now.Sub(r.CreatedAt) >= s.ttl {
				delete(s.reports, k)
			}
		}
		s.cleanupN = 0
	}

	r, ok := s.reports[id]
	if !ok {
		return nil, false
	}
	if now.Sub(r.CreatedAt) >= s.ttl {
		delete(s.reports, id)
		return nil, false
	}
	return r, true
}

// Len returns the number of live entries (expired-but-unswept included).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}
