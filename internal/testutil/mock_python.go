package testutil

import "context"

// MockExecutor is a mock implementation of bearprof.Executor for testing.
// Every invocation's argv is recorded in Calls.
type MockExecutor struct {
	RunFunc func(args ...string) ([]byte, error)
	Calls   [][]string
}

func (m *MockExecutor) Run(ctx context.Context, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, args)
	if m.RunFunc != nil {
		return m.RunFunc(args...)
	}
	return nil, nil
}
