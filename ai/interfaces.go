package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces text completions from a generative language model.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Complete submits a prompt to the model and returns its raw text response.
	// The call blocks until the model responds or errors; once issued it runs
	// to completion, no cancellation token is threaded through mid-request.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summarizer condenses one or more documents into a short summary.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize produces a summary of the given document texts.
	// Returns an error if the underlying model call fails.
	Summarize(ctx context.Context, texts []string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder, Generator and Summarizer
// instances, ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Summarizer returns the document summarization service.
	// The returned Summarizer is safe for concurrent use.
	Summarizer() Summarizer

	// EmbeddingModelID returns the identifier of the embedding model.
	// Entries written to the index are tagged with this value, and queries
	// made with a different model are rejected.
	EmbeddingModelID() string

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
