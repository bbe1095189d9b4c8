package mock

import "github.com/poiesic/triage/ai"

// MockProvider is a test double for ai.Provider aggregating the other mocks.
type MockProvider struct {
	embedder   *MockEmbedder
	generator  *MockGenerator
	summarizer *MockSummarizer
	modelID    string
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider wired to fresh mock services.
// Returns the concrete type; use GetMockEmbedder/GetMockGenerator/
// GetMockSummarizer to inject behavior and make assertions.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		generator:  NewMockGenerator(""),
		summarizer: NewMockSummarizer(""),
		modelID:    "mock-embedding-model",
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the mock generation service.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Summarizer returns the mock summarization service.
func (p *MockProvider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// EmbeddingModelID returns the mock embedding model identifier.
func (p *MockProvider) EmbeddingModelID() string {
	return p.modelID
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockGenerator returns the concrete generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}

// GetMockSummarizer returns the concrete summarizer for test assertions.
func (p *MockProvider) GetMockSummarizer() *MockSummarizer {
	return p.summarizer
}
