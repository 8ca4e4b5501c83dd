package mocks

import (
	"context"
	"sync"
)

// Mock Chat Repository
type MockChatRepo struct {
	Response string
	Err      error

	mu    sync.Mutex
	Calls []ChatCall
}

type ChatCall struct {
	System string
	User   string
}

func (m *MockChatRepo) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, ChatCall{System: system, User: user})
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if m.Response == "" {
		return "test summary", nil
	}
	return m.Response, nil
}

// CallCount returns how many completions were requested
func (m *MockChatRepo) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
