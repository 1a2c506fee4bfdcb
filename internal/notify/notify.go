// Package notify provides the notification sinks that surface mutation
// outcomes to the user.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Console writes outcomes to a writer, one line per notification. The CLI's
// stand-in for the mobile app's toast.
type Console struct {
	Out io.Writer
	Err io.Writer
}

func (c *Console) Success(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintln(c.Out, msg)
}

func (c *Console) Failure(msg string, err error) {
	if msg == "" {
		msg = "operation failed"
	}
	fmt.Fprintf(c.Err, "%s: %v\n", msg, err)
}

// Memory records notifications for tests.
type Memory struct {
	mu        sync.Mutex
	Successes []string
	Failures  []string
}

func (m *Memory) Success(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = append(m.Successes, msg)
}

func (m *Memory) Failure(msg string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures = append(m.Failures, fmt.Sprintf("%s: %v", msg, err))
}

// Counts returns how many successes and failures were recorded.
func (m *Memory) Counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Successes), len(m.Failures)
}
