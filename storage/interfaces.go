package storage

import (
	"context"

	"github.com/poiesic/triage/core"
)

// Similarity metrics supported by index backends.
const (
	// MetricCosine orders results by cosine similarity. This is the only
	// metric the gateway provisions; vectors are normalized before writes,
	// so backends may compute it as a dot product.
	MetricCosine = "cosine"
)

// IndexStats describes the size of a named index.
type IndexStats struct {
	// TotalVectors is the number of entries persisted in the index.
	TotalVectors int
}

// VectorIndex is a persistent similarity index addressed by name.
// Implementations must be thread-safe and support concurrent access.
//
// The index service exclusively owns persisted vectors: entries are created
// by Upsert, never mutated, and identical entry IDs overwrite in place, which
// makes retried writes safe under at-least-once delivery.
type VectorIndex interface {
	// EnsureIndex creates the named index with the given vector dimension
	// and similarity metric if it does not already exist. Calling it again
	// with the same parameters is a no-op; calling it with a different
	// dimension or metric is an error.
	EnsureIndex(ctx context.Context, name string, dimension int, metric string) error

	// HasIndex reports whether the named index exists.
	HasIndex(ctx context.Context, name string) (bool, error)

	// Upsert writes entries into the named index.
	// Returns ErrIndexNotFound if the index has not been created.
	Upsert(ctx context.Context, name string, entries []*core.IndexEntry) error

	// Query performs a k-nearest-neighbor search against the named index.
	// Results are ordered by descending similarity, at most k of them.
	// Returns ErrIndexNotFound if the index has not been created.
	Query(ctx context.Context, name string, vector []float32, k int) ([]*core.RetrievalMatch, error)

	// Stats returns entry counts for the named index.
	// Returns ErrIndexNotFound if the index has not been created.
	Stats(ctx context.Context, name string) (IndexStats, error)

	// Close closes the index backend and releases resources.
	Close() error
}
