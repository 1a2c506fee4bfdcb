package offline

import (
	"sync"
	"testing"
	"time"
)

// entry is the collection item used across this package's tests.
type entry struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

func (e entry) ItemID() ID { return e.ID }

func byRank(a, b entry) bool { return a.Rank < b.Rank }

// testSink records notifications for assertions.
type testSink struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (s *testSink) Success(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successes = append(s.successes, msg)
}

func (s *testSink) Failure(msg string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, msg)
}

func (s *testSink) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.successes), len(s.failures)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func names(items []entry) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func sameNames(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
