package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/triage/core"
	"github.com/poiesic/triage/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func makeEntry(text string, vector []float32) *core.IndexEntry {
	return &core.IndexEntry{
		Id:     core.IDFromContent(text),
		Vector: vector,
		Text:   text,
		Metadata: map[string]string{
			"source": "tickets.csv#0",
		},
	}
}

func TestEnsureIndex(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	found, err := idx.HasIndex(ctx, "support")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, idx.EnsureIndex(ctx, "support", 3, storage.MetricCosine))

	found, err = idx.HasIndex(ctx, "support")
	require.NoError(t, err)
	assert.True(t, found)

	t.Run("idempotent with same parameters", func(t *testing.T) {
		assert.NoError(t, idx.EnsureIndex(ctx, "support", 3, storage.MetricCosine))
	})

	t.Run("different dimension fails", func(t *testing.T) {
		err := idx.EnsureIndex(ctx, "support", 4, storage.MetricCosine)
		assert.ErrorIs(t, err, storage.ErrIndexMismatch)
	})

	t.Run("name with key separator fails", func(t *testing.T) {
		err := idx.EnsureIndex(ctx, "support:extra", 3, storage.MetricCosine)
		assert.ErrorIs(t, err, storage.ErrInvalidIndexName)
	})

	t.Run("empty name fails", func(t *testing.T) {
		err := idx.EnsureIndex(ctx, "", 3, storage.MetricCosine)
		assert.ErrorIs(t, err, storage.ErrInvalidIndexName)
	})
}

func TestUpsertAndQuery(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx, "support", 3, storage.MetricCosine))

	entries := []*core.IndexEntry{
		makeEntry("vpn keeps dropping", []float32{1, 0, 0}),
		makeEntry("printer out of toner", []float32{0, 1, 0}),
		makeEntry("vpn certificate expired", []float32{0.9, 0.1, 0}),
	}
	require.NoError(t, idx.Upsert(ctx, "support", entries))

	matches, err := idx.Query(ctx, "support", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Ordered by descending similarity to the query vector.
	assert.Equal(t, "vpn keeps dropping", matches[0].Entry.Text)
	assert.Equal(t, "vpn certificate expired", matches[1].Entry.Text)
	assert.Greater(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, "tickets.csv#0", matches[0].Entry.Metadata["source"])
}

func TestUpsert_Overwrite(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx, "support", 2, storage.MetricCosine))

	entry := makeEntry("same text", []float32{1, 0})
	require.NoError(t, idx.Upsert(ctx, "support", []*core.IndexEntry{entry}))
	// Replay of the same batch must not duplicate entries.
	require.NoError(t, idx.Upsert(ctx, "support", []*core.IndexEntry{entry}))

	stats, err := idx.Stats(ctx, "support")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalVectors)
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx, "support", 3, storage.MetricCosine))

	err := idx.Upsert(ctx, "support", []*core.IndexEntry{
		makeEntry("wrong size", []float32{1, 0}),
	})
	assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
}

func TestQuery_MissingIndex(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	_, err := idx.Query(ctx, "nope", []float32{1, 0}, 5)
	assert.ErrorIs(t, err, storage.ErrIndexNotFound)

	err = idx.Upsert(ctx, "nope", []*core.IndexEntry{makeEntry("x", []float32{1, 0})})
	assert.ErrorIs(t, err, storage.ErrIndexNotFound)

	_, err = idx.Stats(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrIndexNotFound)
}

func TestQuery_InvalidParameters(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx, "support", 2, storage.MetricCosine))

	_, err := idx.Query(ctx, "support", []float32{1, 0}, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	_, err = idx.Query(ctx, "support", nil, 5)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestQuery_KLargerThanIndex(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx, "support", 2, storage.MetricCosine))
	require.NoError(t, idx.Upsert(ctx, "support", []*core.IndexEntry{
		makeEntry("only one", []float32{1, 0}),
	}))

	matches, err := idx.Query(ctx, "support", []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestNamedIndexesAreIsolated(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx, "support", 2, storage.MetricCosine))
	require.NoError(t, idx.EnsureIndex(ctx, "handbook", 2, storage.MetricCosine))

	require.NoError(t, idx.Upsert(ctx, "support", []*core.IndexEntry{
		makeEntry("support entry", []float32{1, 0}),
	}))

	matches, err := idx.Query(ctx, "handbook", []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)

	stats, err := idx.Stats(ctx, "support")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalVectors)
}

func TestStats_CountsAcrossBatches(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx, "support", 2, storage.MetricCosine))

	for batch := 0; batch < 3; batch++ {
		var entries []*core.IndexEntry
		for i := 0; i < 10; i++ {
			text := fmt.Sprintf("ticket %d in batch %d", i, batch)
			entries = append(entries, makeEntry(text, []float32{float32(i), 1}))
		}
		require.NoError(t, idx.Upsert(ctx, "support", entries))
	}

	stats, err := idx.Stats(ctx, "support")
	require.NoError(t, err)
	assert.Equal(t, 30, stats.TotalVectors)
}
