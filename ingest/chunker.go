package ingest

import (
	"strings"

	"github.com/poiesic/triage/core"
)

// Default chunking parameters, measured in runes.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunk splits text into overlapping fixed-size segments suitable for embedding.
//
// The split is a greedy forward scan over runes: take up to chunkSize runes,
// advance by chunkSize-overlap, repeat until the text is consumed. The final
// chunk may be shorter than chunkSize. Consecutive chunks from the same text
// overlap by exactly overlap runes, except the first chunk (no leading
// overlap) and the last (no trailing overlap).
//
// Splitting is by exact rune windows rather than natural boundaries; this
// keeps re-chunking deterministic and lets the original text be reconstructed
// by concatenating the chunks with the overlap removed.
//
// Preconditions: chunkSize > 0, 0 <= overlap < chunkSize, and text non-empty
// after trimming whitespace. Violations fail with ErrInvalidChunkParameters
// or ErrEmptyInput.
func Chunk(text string, chunkSize, overlap int) ([]core.TextChunk, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, ErrInvalidChunkParameters
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	runes := []rune(text)
	step := chunkSize - overlap

	var chunks []core.TextChunk
	for start := 0; ; start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		leading := overlap
		if start == 0 {
			leading = 0
		}

		chunks = append(chunks, core.TextChunk{
			Text:    string(runes[start:end]),
			Seq:     len(chunks),
			Overlap: leading,
		})

		if end == len(runes) {
			break
		}
	}

	if len(chunks) == 0 {
		return nil, ErrNoChunksProduced
	}

	return chunks, nil
}

// ChunkDocument chunks an extracted document and stamps each chunk with the
// document's origin, the batch correlation id, and source metadata.
func ChunkDocument(doc *core.SourceDocument, chunkSize, overlap int, batchID string) ([]core.TextChunk, error) {
	chunks, err := Chunk(doc.Text, chunkSize, overlap)
	if err != nil {
		return nil, documentError(doc.Origin, err)
	}

	for i := range chunks {
		chunks[i].Origin = doc.Origin
		chunks[i].BatchID = batchID
		chunks[i].Metadata = map[string]string{
			"source": doc.Origin,
			"type":   doc.Kind.String(),
		}
	}

	return chunks, nil
}
