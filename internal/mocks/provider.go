package mocks

import (
	"context"
	"sync"
)

// MockProvider implements generation.Provider for testing
type MockProvider struct {
	SendFn       func(ctx context.Context, userInput string) (string, error)
	SendSingleFn func(ctx context.Context, userInput, platform string) (string, error)

	// Default response values
	Reply string
	Err   error

	// Call tracking for verification
	SendCalls struct {
		mu     sync.Mutex
		Count  int
		Inputs []string
	}

	SendSingleCalls struct {
		mu        sync.Mutex
		Count     int
		Inputs    []string
		Platforms []string
	}
}

// NewMockProviderWithReply creates a MockProvider that answers every call with reply
func NewMockProviderWithReply(reply string) *MockProvider {
	return &MockProvider{Reply: reply}
}

// NewMockProviderWithError creates a MockProvider that fails every call with err
func NewMockProviderWithError(err error) *MockProvider {
	return &MockProvider{Err: err}
}

// Send implements the generation.Provider interface
func (m *MockProvider) Send(ctx context.Context, userInput string) (string, error) {
	m.SendCalls.mu.Lock()
	m.SendCalls.Count++
	m.SendCalls.Inputs = append(m.SendCalls.Inputs, userInput)
	m.SendCalls.mu.Unlock()

	if m.SendFn != nil {
		return m.SendFn(ctx, userInput)
	}
	return m.Reply, m.Err
}

// SendSingle implements the generation.Provider interface
func (m *MockProvider) SendSingle(ctx context.Context, userInput, platform string) (string, error) {
	m.SendSingleCalls.mu.Lock()
	m.SendSingleCalls.Count++
	m.SendSingleCalls.Inputs = append(m.SendSingleCalls.Inputs, userInput)
	m.SendSingleCalls.Platforms = append(m.SendSingleCalls.Platforms, platform)
	m.SendSingleCalls.mu.Unlock()

	if m.SendSingleFn != nil {
		return m.SendSingleFn(ctx, userInput, platform)
	}
	return m.Reply, m.Err
}

// SendCount returns how many times Send was called
func (m *MockProvider) SendCount() int {
	m.SendCalls.mu.Lock()
	defer m.SendCalls.mu.Unlock()
	return m.SendCalls.Count
}
