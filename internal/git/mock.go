package git

import (
	"context"
	"strings"
	"sync"
)

// Mock is an in-memory Runner for testing. It records every call and
// returns canned results keyed by the full argument list. Commands
// without a stub succeed with empty output.
type Mock struct {
	mu      sync.Mutex
	calls   [][]string
	results map[string]mockResult
}

type mockResult struct {
	out string
	err error
}

// NewMock creates an empty Mock.
func NewMock() *Mock {
	return &Mock{results: make(map[string]mockResult)}
}

// Stub registers canned stdout for an exact argument list.
func (m *Mock) Stub(out string, args ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[mockKey(args)] = mockResult{out: out}
}

// StubErr registers a canned failure for an exact argument list.
func (m *Mock) StubErr(err error, args ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[mockKey(args)] = mockResult{err: err}
}

func (m *Mock) Execute(ctx context.Context, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, args)

	if res, ok := m.results[mockKey(args)]; ok {
		return res.out, res.err
	}
	return "", nil
}

// Calls returns a copy of every recorded argument list, in call order.
func (m *Mock) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([][]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Called reports whether the exact command was executed at least once.
func (m *Mock) Called(args ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := mockKey(args)
	for _, call := range m.calls {
		if mockKey(call) == key {
			return true
		}
	}
	return false
}

// CallCount returns how many times the exact command was executed.
func (m *Mock) CallCount(args ...string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := mockKey(args)
	count := 0
	for _, call := range m.calls {
		if mockKey(call) == key {
			count++
		}
	}
	return count
}

func mockKey(args []string) string {
	return strings.Join(args, "\x00")
}
