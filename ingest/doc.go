// Package ingest turns source documents into embedding-ready text chunks.
//
// Sources are a tagged variant (PDF file, CSV row, sitemap web page), each
// carrying its own extraction routine and dispatched through a single
// Extract entry point. Extraction is a pure transform; failures carry the
// origin identifier and fail only the affected document.
//
// The chunker performs a greedy forward split with a fixed overlap. Chunking
// the same text with the same parameters is deterministic and idempotent.
package ingest
