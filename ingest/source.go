package ingest

import (
	"context"

	"github.com/poiesic/triage/core"
)

// Source is one ingestable document variant. Each variant carries its own
// extraction routine; Extract is the single dispatch point.
type Source interface {
	// Kind returns the media type of the source.
	Kind() core.SourceKind

	// Origin returns the identifier carried into chunk metadata and errors
	// (filename, URL, or row reference).
	Origin() string

	// Extract reads the source and returns its text.
	// Extraction is a pure transform: it never modifies the source and has
	// no side effects beyond reading it.
	Extract(ctx context.Context) (string, error)
}

// Extract runs a source's extraction routine and returns the populated
// document. Failures are wrapped with the source's origin identifier.
func Extract(ctx context.Context, src Source) (*core.SourceDocument, error) {
	text, err := src.Extract(ctx)
	if err != nil {
		return nil, err
	}

	return &core.SourceDocument{
		Kind:   src.Kind(),
		Origin: src.Origin(),
		Text:   text,
	}, nil
}

// ExtractAll extracts every source in order. A failing source fails only that
// document: its error is collected and the remaining sources still run.
func ExtractAll(ctx context.Context, sources []Source) ([]*core.SourceDocument, []error) {
	docs := make([]*core.SourceDocument, 0, len(sources))
	var errs []error

	for _, src := range sources {
		doc, err := Extract(ctx, src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}

	return docs, errs
}
