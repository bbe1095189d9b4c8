package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated with content-based hashing so identical content
// always maps to the same entry.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Re-ingesting the same chunk produces the same ID, which makes index writes
// idempotent under at-least-once delivery.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceKind identifies the media type of a source document.
type SourceKind int

const (
	// SourceKindPDF represents an uploaded PDF file.
	SourceKindPDF SourceKind = iota + 1
	// SourceKindCSVRow represents a single row of a tabular upload.
	SourceKindCSVRow
	// SourceKindWebPage represents a page fetched from a sitemap.
	SourceKindWebPage
)

// String returns the metadata tag for the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceKindPDF:
		return "pdf"
	case SourceKindCSVRow:
		return "csv_row"
	case SourceKindWebPage:
		return "web_page"
	default:
		return "unknown"
	}
}

// SourceDocument is a raw document handed to the ingestor.
// It is immutable once read: extraction never modifies the source.
type SourceDocument struct {
	Kind   SourceKind
	Origin string // filename, URL, or row index; carried into error messages
	Text   string // extracted text, populated by the ingestor
}

// TextChunk is a bounded contiguous slice of source text prepared for embedding.
type TextChunk struct {
	Text     string
	Seq      int // zero-based position within the source
	Overlap  int // overlap length (in runes) used to produce it
	Origin   string
	BatchID  string // correlation id shared by all chunks of one ingest call
	Metadata map[string]string
}

// IndexEntry is the persisted triple stored in the vector index.
// Entries are created on ingest and never mutated.
type IndexEntry struct {
	Id       ID
	Vector   []float32
	Text     string
	Metadata map[string]string
}

// RetrievalMatch is one element of a retrieval result: a stored entry
// plus its similarity to the query. Transient, never persisted.
type RetrievalMatch struct {
	Entry *IndexEntry
	Score float32
}

// Classification method tags, in fallback order.
const (
	// MethodModel means the persisted supervised model produced the label.
	MethodModel = "ml_model"
	// MethodLLM means the generative-model fallback produced the label.
	MethodLLM = "llm"
	// MethodFallback means every strategy failed and the default label was used.
	MethodFallback = "fallback"
)

// ClassificationOutcome is the result of classifying one piece of text.
// Every classification request resolves to an outcome; there is no error path
// visible to the caller.
type ClassificationOutcome struct {
	Category   string
	Confidence float64 // in [0,1]; zero when the method cannot estimate one
	Method     string  // one of the Method* constants
}

// LabeledExample is one row of a training dataset: raw text and its category.
type LabeledExample struct {
	Text     string
	Category string
}
