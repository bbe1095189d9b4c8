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


package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument indicates a source document with no pages or rows.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrNoExtractableText indicates every page yielded empty text.
	// Scanned-image PDFs without an embedded text layer are not supported.
	ErrNoExtractableText = errors.New("no extractable text in document")

	// ErrEmptyInput indicates chunking input that is empty after trimming whitespace.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrInvalidChunkParameters indicates chunk_size <= 0 or an overlap
	// outside [0, chunk_size).
	ErrInvalidChunkParameters = errors.New("invalid chunk size or overlap parameters")

	// ErrNoChunksProduced indicates the chunker yielded zero chunks for
	// non-empty input. Should not occur given the preconditions; treated
	// as an internal invariant violation.
	ErrNoChunksProduced = errors.New("no chunks produced from input")

	// ErrMalformedRow indicates a CSV row without the expected two columns.
	ErrMalformedRow = errors.New("malformed csv row")
)

// DocumentError wraps an extraction failure with the origin identifier of the
// failing document, so the user can fix and retry that document.
type DocumentError struct {
	Origin string
	Err    error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %q: %v", e.Origin, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}

// documentError wraps err with origin context.
func documentError(origin string, err error) error {
	return &DocumentError{Origin: origin, Err: err}
}
