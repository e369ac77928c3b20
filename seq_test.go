package kook

import (
	"sync"
	"testing"
)

func TestSeqStoreMax(t *testing.T) {
	s := NewSeqStore()
	s.Update("a", 3)
	s.Update("a", 1)
	if got := s.Get("a"); got != 3 {
		t.Fatalf("Get = %d, want 3", got)
	}
	s.Update("a", 7)
	if got := s.Get("a"); got != 7 {
		t.Fatalf("Get = %d, want 7", got)
	}
}

func TestSeqStorePerBot(t *testing.T) {
	s := NewSeqStore()
	s.Update("a", 5)
	s.Update("b", 2)
	if s.Get("a") != 5 || s.Get("b") != 2 {
		t.Fatalf("counters leaked between bots: a=%d b=%d", s.Get("a"), s.Get("b"))
	}
	s.Reset("a")
	if s.Get("a") != 0 {
		t.Fatalf("Reset did not clear counter")
	}
	if s.Get("b") != 2 {
		t.Fatalf("Reset cleared the wrong bot")
	}
}

func TestSeqStoreConcurrent(t *testing.T) {
	s := NewSeqStore()
	var wg sync.WaitGroup
	for i := int64(1); i <= 100; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			s.Update("a", n)
		}(i)
	}
	wg.Wait()
	if got := s.Get("a"); got != 100 {
		t.Fatalf("Get = %d, want 100", got)
	}
}
