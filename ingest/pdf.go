package ingest

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/triage/core"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// PDFSource is an uploaded PDF file.
type PDFSource struct {
	Name   string
	Reader io.ReaderAt
	Size   int64
}

var _ Source = (*PDFSource)(nil)

// NewPDFSource creates a PDF source from a readable handle.
func NewPDFSource(name string, r io.ReaderAt, size int64) *PDFSource {
	return &PDFSource{Name: name, Reader: r, Size: size}
}

// Kind returns core.SourceKindPDF.
func (s *PDFSource) Kind() core.SourceKind {
	return core.SourceKindPDF
}

// Origin returns the file name.
func (s *PDFSource) Origin() string {
	return s.Name
}

// Extract concatenates per-page text in page order.
// Fails with ErrEmptyDocument when the PDF has zero pages and with
// ErrNoExtractableText when every page yields empty text (scanned-image
// PDFs with no embedded text layer are not supported).
func (s *PDFSource) Extract(ctx context.Context) (string, error) {
	loader := documentloaders.NewPDF(s.Reader, s.Size)

	pages, err := loader.Load(ctx)
	if err != nil {
		return "", documentError(s.Name, err)
	}
	return assemblePages(s.Name, pages)
}

// assemblePages joins per-page text in page order.
func assemblePages(origin string, pages []schema.Document) (string, error) {
	if len(pages) == 0 {
		return "", documentError(origin, ErrEmptyDocument)
	}

	var b strings.Builder
	for _, page := range pages {
		b.WriteString(page.PageContent)
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", documentError(origin, ErrNoExtractableText)
	}

	slog.Debug("extracted pdf text", "origin", origin, "pages", len(pages), "length", len(text))
	return text, nil
}
