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

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a TextChunk failed validation.
	ErrInvalidChunk = errors.New("invalid text chunk")

	// ErrInvalidEntry indicates an IndexEntry failed validation.
	ErrInvalidEntry = errors.New("invalid index entry")

	// ErrEmptyText indicates a required text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptyOrigin indicates the origin identifier is missing.
	ErrEmptyOrigin = errors.New("origin identifier cannot be empty")

	// ErrNegativeSequence indicates a chunk sequence index below zero.
	ErrNegativeSequence = errors.New("sequence index cannot be negative")

	// ErrEmptyVector indicates an index entry without an embedding vector.
	ErrEmptyVector = errors.New("vector cannot be empty")

	// ErrInvalidMethod indicates an unknown classification method tag.
	ErrInvalidMethod = errors.New("invalid classification method")

	// ErrEmptyCategory indicates an outcome without a category label.
	ErrEmptyCategory = errors.New("category cannot be empty")
)
