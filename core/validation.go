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


package core

import "fmt"

// ValidateChunk validates a TextChunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Origin must not be empty
//   - Seq must not be negative
//   - Overlap must not be negative
//
// NOT validated:
//   - BatchID (optional; assigned by the ingest pipeline)
//   - Metadata (optional)
func ValidateChunk(chunk *TextChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if chunk.Origin == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyOrigin)
	}

	if chunk.Seq < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeSequence)
	}

	if chunk.Overlap < 0 {
		return fmt.Errorf("%w: overlap %d", ErrInvalidChunk, chunk.Overlap)
	}

	return nil
}

// ValidateEntry validates an IndexEntry before it is written to the index.
//
// Validation rules:
//   - Text must not be empty
//   - Vector must not be empty
func ValidateEntry(entry *IndexEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyText)
	}

	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyVector)
	}

	return nil
}

// ValidateOutcome validates a ClassificationOutcome.
//
// Validation rules:
//   - Category must not be empty
//   - Method must be one of the Method* constants
//   - Confidence must be in [0,1]
func ValidateOutcome(outcome *ClassificationOutcome) error {
	if outcome == nil {
		return fmt.Errorf("classification outcome is nil")
	}

	if outcome.Category == "" {
		return ErrEmptyCategory
	}

	switch outcome.Method {
	case MethodModel, MethodLLM, MethodFallback:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMethod, outcome.Method)
	}

	if outcome.Confidence < 0 || outcome.Confidence > 1 {
		return fmt.Errorf("confidence %f out of range [0,1]", outcome.Confidence)
	}

	return nil
}
