package mock

import "context"

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// CompleteFunc is called by Complete if set.
	// If nil, Response is returned.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// Response is the canned completion returned when CompleteFunc is nil.
	Response string

	callCount  int
	lastPrompt string
}

// NewMockGenerator creates a mock generator returning the given canned response.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

// Complete returns the injected behavior's result or the canned response.
func (m *MockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	m.callCount++
	m.lastPrompt = prompt

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return m.Response, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// LastPrompt returns the most recent prompt passed to Complete.
func (m *MockGenerator) LastPrompt() string {
	return m.lastPrompt
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.lastPrompt = ""
	m.CompleteFunc = nil
}

// MockSummarizer is a test double for ai.Summarizer.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	SummarizeFunc func(ctx context.Context, texts []string) (string, error)

	// Summary is the canned result returned when SummarizeFunc is nil.
	Summary string

	callCount int
}

// NewMockSummarizer creates a mock summarizer returning the given canned summary.
func NewMockSummarizer(summary string) *MockSummarizer {
	return &MockSummarizer{Summary: summary}
}

// Summarize returns the injected behavior's result or the canned summary.
func (m *MockSummarizer) Summarize(ctx context.Context, texts []string) (string, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, texts)
	}
	return m.Summary, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}
