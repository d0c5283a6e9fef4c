package session

import (
	"testing"
	"time"

	"github.com/tbourn/go-chat-analytics/internal/domain"
)

func TestPutGet(t *testing.T) {
	s := NewStore(time.Minute)
	msgs := domain.Collection{{Sender: "Alice", Text: "hi"}}

	r := s.Put(msgs, 2)
	if r.ID == "" {
		t.Fatalf("empty report id")
	}
	got, ok := s.Get(r.ID)
	if !ok {
		t.Fatalf("Get miss for fresh report")
	}
	if len(got.Messages) != 1 || got.SkippedLines != 2 {
		t.Fatalf("stored report = %+v", got)
	}
	if _, ok := s.Get("no-such-id"); ok {
		t.Fatalf("unknown id must miss")
	}
}

func TestExpiry(t *testing.T) {
	s := NewStore(time.Minute)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	r := s.Put(nil, 0)

	// Just before the TTL boundary the report is still served.
	s.now = func() time.Time { return base.Add(time.Minute - time.Second) }
	if _, ok := s.Get(r.ID); !ok {
		t.Fatalf("report expired early")
	}

	// At the boundary it is gone, and deleted on sight.
	s.now = func() time.Time { return base.Add(time.Minute) }
	if _, ok := s.Get(r.ID); ok {
		t.Fatalf("expired report served")
	}
	if s.Len() != 0 {
		t.Fatalf("expired report not deleted: len=%d", s.Len())
	}
}

func TestOpportunisticSweep(t *testing.T) {
	s := NewStore(time.Minute)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	old := s.Put(nil, 0)
	fresh := s.Put(nil, 0)
	_ = old

	// Age everything past the TTL, then re-add one fresh entry.
	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	live := s.Put(nil, 0)

	// Drive enough lookups to trigger the sweep; the stale entries must be
	// collected even though nobody asks for them directly.
	for i := 0; i < gcEvery; i++ {
		s.Get(live.ID)
	}
	if s.Len() != 1 {
		t.Fatalf("sweep left %d entries, want 1", s.Len())
	}
	if _, ok := s.Get(fresh.ID); ok {
		t.Fatalf("stale entry survived the sweep")
	}
}

func TestDefaultTTL(t *testing.T) {
	s := NewStore(0)
	if s.ttl != time.Hour {
		t.Fatalf("default ttl = %v, want 1h", s.ttl)
	}
}
