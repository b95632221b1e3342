package gen

import (
	"context"
	"sync"
)

// MockService is a scripted Service for tests. Each operation returns
// the configured result (or error) and counts its calls, so tests can
// assert how many provider round-trips a run performed.
type MockService struct {
	mu    sync.Mutex
	calls map[string]int

	GenerateResult Result
	DescribeResult string
	Err            error
}

// NewMockService returns a mock producing res from every image
// operation and text from every describe.
func NewMockService(res Result, text string) *MockService {
	return &MockService{
		calls:          make(map[string]int),
		GenerateResult: res,
		DescribeResult: text,
	}
}

// Calls reports how many times the named operation ran.
func (m *MockService) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// TotalCalls reports the call count across all operations.
func (m *MockService) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *MockService) record(op string) {
	m.mu.Lock()
	m.calls[op]++
	m.mu.Unlock()
}

// EditImage implements Service.
func (m *MockService) EditImage(_ context.Context, _ Image, _ string) (Result, error) {
	m.record("edit")
	return m.GenerateResult, m.Err
}

// GenerateImage implements Service.
func (m *MockService) GenerateImage(_ context.Context, _ string) (Result, error) {
	m.record("generate")
	return m.GenerateResult, m.Err
}

// MixImages implements Service.
func (m *MockService) MixImages(_ context.Context, _, _ Image, _ string) (Result, error) {
	m.record("mix")
	return m.GenerateResult, m.Err
}

// GenerateWithStyle implements Service.
func (m *MockService) GenerateWithStyle(_ context.Context, _ Image, _ string) (Result, error) {
	m.record("style")
	return m.GenerateResult, m.Err
}

// GenerateWithReference implements Service.
func (m *MockService) GenerateWithReference(_ context.Context, _ Image, _ string) (Result, error) {
	m.record("reference")
	return m.GenerateResult, m.Err
}

// DescribeImage implements Service.
func (m *MockService) DescribeImage(_ context.Context, _ Image, _ DescribeMode) (string, error) {
	m.record("describe")
	return m.DescribeResult, m.Err
}
