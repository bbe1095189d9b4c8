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


package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/triage/core"
	"github.com/poiesic/triage/storage"
)

// Index implements storage.VectorIndex on top of a BadgerDB backend.
// Similarity search is a full scan over the named index's entries; with
// normalized vectors the cosine metric reduces to a dot product.
type Index struct {
	backend *Backend
}

var _ storage.VectorIndex = (*Index)(nil)

// NewIndex opens a vector index backend at the given path.
// The caller owns the returned index and must Close it.
func NewIndex(path string) (*Index, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &Index{backend: backend}, nil
}

// Close closes the underlying database.
func (x *Index) Close() error {
	return x.backend.Close()
}

// indexMeta records the parameters a named index was created with.
type indexMeta struct {
	Dimension int
	Metric    string
}

func marshalMeta(meta indexMeta) []byte {
	size := varint.Uint64.Size(uint64(meta.Dimension)) + ord.String.Size(meta.Metric)
	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(meta.Dimension), buf)
	ord.String.Marshal(meta.Metric, buf[n:])
	return buf
}

func unmarshalMeta(data []byte) (indexMeta, error) {
	dim, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return indexMeta{}, err
	}
	metric, _, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return indexMeta{}, err
	}
	return indexMeta{Dimension: int(dim), Metric: metric}, nil
}

// readMeta reads the named index's parameters within a transaction.
// Returns storage.ErrIndexNotFound if the index was never created.
func readMeta(tx *badger.Txn, name string) (indexMeta, error) {
	item, err := tx.Get(makeMetaKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return indexMeta{}, storage.ErrIndexNotFound
	}
	if err != nil {
		return indexMeta{}, err
	}

	var meta indexMeta
	err = item.Value(func(val []byte) error {
		var err error
		meta, err = unmarshalMeta(val)
		return err
	})
	return meta, err
}

// EnsureIndex creates the named index if it does not exist. Re-creating
// with the same parameters is a no-op.
func (x *Index) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	if name == "" || strings.Contains(name, ":") {
		return fmt.Errorf("%w: %q", storage.ErrInvalidIndexName, name)
	}
	if dimension < 1 {
		return fmt.Errorf("%w: dimension %d", storage.ErrInvalidQuery, dimension)
	}

	return x.backend.update(func(tx *badger.Txn) error {
		existing, err := readMeta(tx, name)
		if err == nil {
			if existing.Dimension != dimension || existing.Metric != metric {
				return fmt.Errorf("%w: %q has dimension=%d metric=%q",
					storage.ErrIndexMismatch, name, existing.Dimension, existing.Metric)
			}
			return nil
		}
		if !errors.Is(err, storage.ErrIndexNotFound) {
			return err
		}

		meta := indexMeta{Dimension: dimension, Metric: metric}
		return tx.Set(makeMetaKey(name), marshalMeta(meta))
	})
}

// HasIndex reports whether the named index exists.
func (x *Index) HasIndex(ctx context.Context, name string) (bool, error) {
	var found bool
	err := x.backend.view(func(tx *badger.Txn) error {
		_, err := readMeta(tx, name)
		if errors.Is(err, storage.ErrIndexNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// Upsert writes entries into the named index. Entries with identical IDs
// overwrite in place, so replayed batches converge to the same state.
func (x *Index) Upsert(ctx context.Context, name string, entries []*core.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return x.backend.update(func(tx *badger.Txn) error {
		meta, err := readMeta(tx, name)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			if err := core.ValidateEntry(entry); err != nil {
				return err
			}
			if len(entry.Vector) != meta.Dimension {
				return fmt.Errorf("%w: entry %d has %d, index %q wants %d",
					storage.ErrDimensionMismatch, entry.Id, len(entry.Vector), name, meta.Dimension)
			}
			key := makeEntryKey(name, entry.Id)
			if err := tx.Set(key, storage.MarshalEntry(entry)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Query scans the named index and returns up to k entries ordered by
// descending similarity to the given vector.
func (x *Index) Query(ctx context.Context, name string, vector []float32, k int) ([]*core.RetrievalMatch, error) {
	if k < 1 || len(vector) == 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.RetrievalMatch

	err := x.backend.view(func(tx *badger.Txn) error {
		meta, err := readMeta(tx, name)
		if err != nil {
			return err
		}
		if len(vector) != meta.Dimension {
			return fmt.Errorf("%w: query has %d, index %q wants %d",
				storage.ErrDimensionMismatch, len(vector), name, meta.Dimension)
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEntryScanPrefix(name)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.IndexEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}

			results = append(results, &core.RetrievalMatch{
				Entry: entry,
				Score: dotProduct(vector, entry.Vector),
			})
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.RetrievalMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > k {
		results = results[:k]
	}

	return results, nil
}

// Stats counts the entries persisted in the named index.
func (x *Index) Stats(ctx context.Context, name string) (storage.IndexStats, error) {
	var stats storage.IndexStats

	err := x.backend.view(func(tx *badger.Txn) error {
		if _, err := readMeta(tx, name); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEntryScanPrefix(name)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			stats.TotalVectors++
		}
		return nil
	})

	if err != nil {
		return storage.IndexStats{}, err
	}
	return stats, nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
