package ingest

import (
	"strings"
	"testing"

	"github.com/poiesic/triage/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_Parameters(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Chunk("", 1000, 200)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("whitespace-only input", func(t *testing.T) {
		_, err := Chunk("   \n\t  ", 1000, 200)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("overlap equals chunk size", func(t *testing.T) {
		_, err := Chunk("abc", 10, 10)
		assert.ErrorIs(t, err, ErrInvalidChunkParameters)
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		_, err := Chunk("abc", 10, 11)
		assert.ErrorIs(t, err, ErrInvalidChunkParameters)
	})

	t.Run("negative overlap", func(t *testing.T) {
		_, err := Chunk("abc", 10, -1)
		assert.ErrorIs(t, err, ErrInvalidChunkParameters)
	})

	t.Run("zero chunk size", func(t *testing.T) {
		_, err := Chunk("abc", 0, 0)
		assert.ErrorIs(t, err, ErrInvalidChunkParameters)
	})
}

func TestChunk_SingleChunk(t *testing.T) {
	chunks, err := Chunk("short text", 1000, 200)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Seq)
	assert.Equal(t, 0, chunks[0].Overlap)
}

func TestChunk_OverlapInvariant(t *testing.T) {
	text := strings.Repeat("abcdefghij", 30) // 300 runes
	chunks, err := Chunk(text, 100, 20)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		cur := []rune(chunks[i].Text)

		// The leading runes of each chunk repeat the trailing runes of the
		// previous one, exactly overlap long.
		require.GreaterOrEqual(t, len(prev), 20)
		require.GreaterOrEqual(t, len(cur), 20)
		assert.Equal(t, string(prev[len(prev)-20:]), string(cur[:20]))
		assert.Equal(t, 20, chunks[i].Overlap)
		assert.Equal(t, i, chunks[i].Seq)
	}
	assert.Equal(t, 0, chunks[0].Overlap)
}

func TestChunk_RoundTrip(t *testing.T) {
	// Concatenating chunks with the overlap removed reconstructs the
	// original text exactly.
	cases := []struct {
		name      string
		length    int
		chunkSize int
		overlap   int
	}{
		{"exact multiple", 800, 100, 20},
		{"with remainder", 1001, 100, 20},
		{"no overlap", 537, 64, 0},
		{"large overlap", 900, 100, 99},
		{"spec parameters", 2600, 1000, 200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := makeText(tc.length)
			chunks, err := Chunk(text, tc.chunkSize, tc.overlap)
			require.NoError(t, err)

			var b strings.Builder
			for _, chunk := range chunks {
				runes := []rune(chunk.Text)
				b.WriteString(string(runes[chunk.Overlap:]))
			}
			assert.Equal(t, text, b.String())
		})
	}
}

func TestChunk_Idempotent(t *testing.T) {
	text := makeText(2500)

	first, err := Chunk(text, 1000, 200)
	require.NoError(t, err)
	second, err := Chunk(text, 1000, 200)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestChunk_CountFormula(t *testing.T) {
	// N = ceil((total_len - overlap) / (chunk_size - overlap)) for texts
	// longer than one chunk.
	for _, length := range []int{1000, 1001, 1800, 1801, 2600, 4000} {
		text := makeText(length)
		chunks, err := Chunk(text, 1000, 200)
		require.NoError(t, err)

		want := (length - 200 + 799) / 800 // ceil((len-200)/800)
		if length <= 1000 {
			want = 1
		}
		assert.Equal(t, want, len(chunks), "length %d", length)
	}
}

func TestChunk_MultiByteRunes(t *testing.T) {
	// Sizes are measured in runes, not bytes.
	text := strings.Repeat("日本語テキスト分割", 40) // 320 runes
	chunks, err := Chunk(text, 100, 10)
	require.NoError(t, err)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk.Text)), 100, "chunk %d", i)
	}

	var b strings.Builder
	for _, chunk := range chunks {
		runes := []rune(chunk.Text)
		b.WriteString(string(runes[chunk.Overlap:]))
	}
	assert.Equal(t, text, b.String())
}

func TestChunkDocument_Metadata(t *testing.T) {
	doc := makeDoc("handbook.pdf", makeText(1700))

	chunks, err := ChunkDocument(doc, 1000, 200, "batch-42")
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	for _, chunk := range chunks {
		assert.Equal(t, "handbook.pdf", chunk.Origin)
		assert.Equal(t, "batch-42", chunk.BatchID)
		assert.Equal(t, "handbook.pdf", chunk.Metadata["source"])
		assert.Equal(t, "pdf", chunk.Metadata["type"])
	}
}

func TestChunkDocument_ErrorCarriesOrigin(t *testing.T) {
	doc := makeDoc("blank.pdf", "   ")

	_, err := ChunkDocument(doc, 1000, 200, "batch-42")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyInput)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "blank.pdf", docErr.Origin)
}

// makeDoc builds an extracted PDF document for chunking tests.
func makeDoc(origin, text string) *core.SourceDocument {
	return &core.SourceDocument{
		Kind:   core.SourceKindPDF,
		Origin: origin,
		Text:   text,
	}
}

// makeText builds deterministic text of exactly n runes.
func makeText(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz "
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[i%len(alphabet)]
	}
	return string(b)
}
