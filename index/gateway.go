// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package index

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/triage/ai"
	"github.com/poiesic/triage/core"
	"github.com/poiesic/triage/storage"
)

const (
	// DefaultDimension matches the embedding models the engine targets.
	DefaultDimension = 1536

	// DefaultBatchSize bounds a single upsert request to the index service.
	DefaultBatchSize = 100

	// ModelMetadataKey tags each entry with the embedding model that
	// produced its vector.
	ModelMetadataKey = "embedding_model"

	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// UpsertStats summarizes an upsert call.
type UpsertStats struct {
	// DocumentsAdded is the number of chunks written by this call.
	DocumentsAdded int
	// TotalVectors is the index-wide vector count after the write.
	TotalVectors int
}

// Gateway embeds chunks and moves them in and out of a named vector index.
// It owns embedding-space consistency: every entry is tagged with the model
// that embedded it, and queries from a different model are rejected.
type Gateway struct {
	store          storage.VectorIndex
	embedder       ai.Embedder
	modelID        string
	indexName      string
	dimension      int
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithDimension overrides the vector dimension used when creating the index.
func WithDimension(dimension int) Option {
	return func(g *Gateway) { g.dimension = dimension }
}

// WithBatchSize overrides the upsert batch size.
func WithBatchSize(size int) Option {
	return func(g *Gateway) { g.batchSize = size }
}

// WithRetryPolicy overrides the retry policy for embedding calls.
func WithRetryPolicy(maxRetries int, baseDelay time.Duration) Option {
	return func(g *Gateway) {
		g.maxRetries = maxRetries
		g.retryBaseDelay = baseDelay
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGateway creates a gateway bound to one named index.
// modelID identifies the embedding model and is stamped into entry metadata.
func NewGateway(store storage.VectorIndex, embedder ai.Embedder, modelID, indexName string, opts ...Option) (*Gateway, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if strings.TrimSpace(indexName) == "" {
		return nil, ErrIndexNameRequired
	}

	g := &Gateway{
		store:          store,
		embedder:       embedder,
		modelID:        modelID,
		indexName:      indexName,
		dimension:      DefaultDimension,
		batchSize:      DefaultBatchSize,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		logger:         slog.Default().With("component", "index-gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// IndexName returns the name of the index this gateway writes to.
func (g *Gateway) IndexName() string {
	return g.indexName
}

// Upsert embeds chunks and writes them into the index in bounded batches.
// The index is created on first use. Writes are at-least-once: a mid-call
// failure leaves prior batches in place and surfaces as a WriteError, and
// retrying the whole call converges because entry IDs are content-derived.
func (g *Gateway) Upsert(ctx context.Context, chunks []core.TextChunk) (UpsertStats, error) {
	if len(chunks) == 0 {
		return UpsertStats{}, nil
	}
	for i := range chunks {
		if err := core.ValidateChunk(&chunks[i]); err != nil {
			return UpsertStats{}, err
		}
	}

	if err := g.store.EnsureIndex(ctx, g.indexName, g.dimension, storage.MetricCosine); err != nil {
		return UpsertStats{}, err
	}

	totalBatches := (len(chunks) + g.batchSize - 1) / g.batchSize

	for batch := 0; batch < totalBatches; batch++ {
		start := batch * g.batchSize
		end := min(start+g.batchSize, len(chunks))

		entries, err := g.embedBatch(ctx, chunks[start:end])
		if err != nil {
			return UpsertStats{}, &WriteError{BatchesWritten: batch, TotalBatches: totalBatches, Err: err}
		}
		if err := g.store.Upsert(ctx, g.indexName, entries); err != nil {
			return UpsertStats{}, &WriteError{BatchesWritten: batch, TotalBatches: totalBatches, Err: err}
		}

		g.logger.Debug("wrote batch", "index", g.indexName, "batch", batch+1, "batches", totalBatches, "entries", len(entries))
	}

	stats, err := g.store.Stats(ctx, g.indexName)
	if err != nil {
		return UpsertStats{}, err
	}

	g.logger.Info("upsert complete", "index", g.indexName, "documents_added", len(chunks), "total_vectors", stats.TotalVectors)
	return UpsertStats{DocumentsAdded: len(chunks), TotalVectors: stats.TotalVectors}, nil
}

// embedBatch turns one batch of chunks into index entries.
func (g *Gateway) embedBatch(ctx context.Context, chunks []core.TextChunk) ([]*core.IndexEntry, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = g.embedder.EmbedTexts(ctx, texts)
		return err
	}, g.maxRetries, g.retryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", g.maxRetries, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(vectors))
	}

	entries := make([]*core.IndexEntry, len(chunks))
	for i, chunk := range chunks {
		metadata := make(map[string]string, len(chunk.Metadata)+3)
		for k, v := range chunk.Metadata {
			metadata[k] = v
		}
		metadata[ModelMetadataKey] = g.modelID
		metadata["seq"] = strconv.Itoa(chunk.Seq)
		if chunk.BatchID != "" {
			metadata["batch_id"] = chunk.BatchID
		}

		entries[i] = &core.IndexEntry{
			Id:       entryID(&chunk),
			Vector:   NormalizeVector(vectors[i]),
			Text:     chunk.Text,
			Metadata: metadata,
		}
	}
	return entries, nil
}

// entryID derives a deterministic ID so that replayed writes overwrite
// rather than duplicate.
func entryID(chunk *core.TextChunk) core.ID {
	return core.IDFromContent(fmt.Sprintf("%s|%d|%s", chunk.Origin, chunk.Seq, chunk.Text))
}

// Query embeds text with the gateway's model and returns the k nearest
// entries. Querying an index that was never created returns
// storage.ErrIndexNotFound; matches embedded by a different model fail
// with ErrModelMismatch.
func (g *Gateway) Query(ctx context.Context, text string, k int) ([]*core.RetrievalMatch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyQuery
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", storage.ErrInvalidQuery, k)
	}

	found, err := g.store.HasIndex(ctx, g.indexName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", storage.ErrIndexNotFound, g.indexName)
	}

	var vector []float32
	err = RetryWithBackoff(ctx, func() error {
		var err error
		vector, err = g.embedder.EmbedText(ctx, text)
		return err
	}, g.maxRetries, g.retryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := g.store.Query(ctx, g.indexName, NormalizeVector(vector), k)
	if err != nil {
		return nil, err
	}

	for _, match := range matches {
		model, ok := match.Entry.Metadata[ModelMetadataKey]
		if ok && model != g.modelID {
			return nil, fmt.Errorf("%w: index has %q, query used %q", ErrModelMismatch, model, g.modelID)
		}
	}
	return matches, nil
}
