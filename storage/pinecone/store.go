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


package pinecone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/poiesic/triage/core"
	"github.com/poiesic/triage/storage"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultCloud  = pinecone.Aws
	defaultRegion = "us-east-1"

	// textMetadataKey carries the entry text through Pinecone metadata,
	// since Pinecone vectors have no payload of their own.
	textMetadataKey = "text"

	readyPollInterval = 2 * time.Second
)

// Store implements storage.VectorIndex against Pinecone serverless indexes.
type Store struct {
	client *pinecone.Client
	cloud  pinecone.Cloud
	region string
	logger *slog.Logger

	mu    sync.Mutex
	conns map[string]*pinecone.IndexConnection
}

var _ storage.VectorIndex = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithCloud overrides the serverless cloud provider for new indexes.
func WithCloud(cloud pinecone.Cloud) Option {
	return func(s *Store) { s.cloud = cloud }
}

// WithRegion overrides the serverless region for new indexes.
func WithRegion(region string) Option {
	return func(s *Store) { s.region = region }
}

// WithLogger sets the logger used by the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a Pinecone-backed vector index client.
// New indexes are provisioned serverless on aws/us-east-1 unless overridden.
func NewStore(apiKey string, opts ...Option) (*Store, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: apiKey})
	if err != nil {
		return nil, err
	}

	store := &Store{
		client: client,
		cloud:  defaultCloud,
		region: defaultRegion,
		logger: slog.Default().With("component", "pinecone"),
		conns:  make(map[string]*pinecone.IndexConnection),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Close releases all cached index connections.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for name, conn := range s.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.conns, name)
	}
	return firstErr
}

// describeIndex looks the named index up, mapping absence to ErrIndexNotFound.
func (s *Store) describeIndex(ctx context.Context, name string) (*pinecone.Index, error) {
	indexes, err := s.client.ListIndexes(ctx)
	if err != nil {
		return nil, err
	}
	for _, idx := range indexes {
		if idx.Name == name {
			return idx, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", storage.ErrIndexNotFound, name)
}

// EnsureIndex creates the named serverless index if it does not exist and
// waits until it is ready to accept writes.
func (s *Store) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	existing, err := s.describeIndex(ctx, name)
	if err == nil {
		if existing.Dimension != nil && int(*existing.Dimension) != dimension {
			return fmt.Errorf("%w: %q has dimension=%d", storage.ErrIndexMismatch, name, *existing.Dimension)
		}
		if string(existing.Metric) != metric {
			return fmt.Errorf("%w: %q has metric=%q", storage.ErrIndexMismatch, name, existing.Metric)
		}
		return nil
	}

	dim := int32(dimension)
	indexMetric := pinecone.IndexMetric(metric)
	_, err = s.client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:      name,
		Dimension: &dim,
		Metric:    &indexMetric,
		Cloud:     s.cloud,
		Region:    s.region,
	})
	if err != nil {
		return fmt.Errorf("creating index %q: %w", name, err)
	}

	s.logger.Info("created serverless index", "name", name, "dimension", dimension, "metric", metric)
	return s.waitUntilReady(ctx, name)
}

// waitUntilReady polls until the index reports ready.
func (s *Store) waitUntilReady(ctx context.Context, name string) error {
	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		idx, err := s.client.DescribeIndex(ctx, name)
		if err != nil {
			return err
		}
		if idx.Status != nil && idx.Status.Ready {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// HasIndex reports whether the named index exists.
func (s *Store) HasIndex(ctx context.Context, name string) (bool, error) {
	_, err := s.describeIndex(ctx, name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrIndexNotFound) {
		return false, nil
	}
	return false, err
}

// connection returns a cached data-plane connection for the named index.
func (s *Store) connection(ctx context.Context, name string) (*pinecone.IndexConnection, error) {
	s.mu.Lock()
	if conn, ok := s.conns[name]; ok {
		s.mu.Unlock()
		return conn, nil
	}
	s.mu.Unlock()

	idx, err := s.describeIndex(ctx, name)
	if err != nil {
		return nil, err
	}
	conn, err := s.client.Index(pinecone.NewIndexConnParams{Host: idx.Host})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.conns[name]; ok {
		conn.Close()
		return cached, nil
	}
	s.conns[name] = conn
	return conn, nil
}

// Upsert writes entries into the named index. Entry text travels in vector
// metadata under the "text" key.
func (s *Store) Upsert(ctx context.Context, name string, entries []*core.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	conn, err := s.connection(ctx, name)
	if err != nil {
		return err
	}

	vectors := make([]*pinecone.Vector, 0, len(entries))
	for _, entry := range entries {
		if err := core.ValidateEntry(entry); err != nil {
			return err
		}

		fields := make(map[string]any, len(entry.Metadata)+1)
		for k, v := range entry.Metadata {
			fields[k] = v
		}
		fields[textMetadataKey] = entry.Text

		metadata, err := structpb.NewStruct(fields)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}

		values := entry.Vector
		vectors = append(vectors, &pinecone.Vector{
			Id:       strconv.FormatUint(uint64(entry.Id), 10),
			Values:   &values,
			Metadata: metadata,
		})
	}

	count, err := conn.UpsertVectors(ctx, vectors)
	if err != nil {
		return err
	}
	s.logger.Debug("upserted vectors", "index", name, "count", count)
	return nil
}

// Query returns up to k entries ordered by descending similarity.
func (s *Store) Query(ctx context.Context, name string, vector []float32, k int) ([]*core.RetrievalMatch, error) {
	if k < 1 || len(vector) == 0 {
		return nil, storage.ErrInvalidQuery
	}

	conn, err := s.connection(ctx, name)
	if err != nil {
		return nil, err
	}

	res, err := conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(k),
		IncludeValues:   true,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]*core.RetrievalMatch, 0, len(res.Matches))
	for _, m := range res.Matches {
		if m.Vector == nil {
			continue
		}
		entry, err := entryFromVector(m.Vector)
		if err != nil {
			return nil, err
		}
		matches = append(matches, &core.RetrievalMatch{Entry: entry, Score: m.Score})
	}
	return matches, nil
}

// entryFromVector rebuilds an IndexEntry from a returned Pinecone vector.
func entryFromVector(v *pinecone.Vector) (*core.IndexEntry, error) {
	id, err := strconv.ParseUint(v.Id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: vector id %q: %w", storage.ErrSerializationFailed, v.Id, err)
	}

	entry := &core.IndexEntry{Id: core.ID(id)}
	if v.Values != nil {
		entry.Vector = *v.Values
	}

	if v.Metadata != nil {
		fields := v.Metadata.GetFields()
		entry.Metadata = make(map[string]string, len(fields))
		for key, value := range fields {
			if key == textMetadataKey {
				entry.Text = value.GetStringValue()
				continue
			}
			entry.Metadata[key] = value.GetStringValue()
		}
	}
	return entry, nil
}

// Stats reports vector counts from the index's stats endpoint.
func (s *Store) Stats(ctx context.Context, name string) (storage.IndexStats, error) {
	conn, err := s.connection(ctx, name)
	if err != nil {
		return storage.IndexStats{}, err
	}

	stats, err := conn.DescribeIndexStats(ctx)
	if err != nil {
		return storage.IndexStats{}, err
	}
	return storage.IndexStats{TotalVectors: int(stats.TotalVectorCount)}, nil
}
