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


package index

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreRequired is returned when no vector store is provided.
	ErrStoreRequired = errors.New("vector store is required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrIndexNameRequired is returned when no index name is configured.
	ErrIndexNameRequired = errors.New("index name is required")

	// ErrEmptyQuery is returned for blank query text.
	ErrEmptyQuery = errors.New("query text is empty")

	// ErrModelMismatch is returned when a query would compare vectors from
	// different embedding models. Similarity across embedding spaces is
	// meaningless, so the query is rejected instead.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)

// WriteError reports a failed upsert along with how many batches were
// already written. Prior batches are not rolled back; retrying the whole
// call is safe because entry IDs are content-derived and overwrite in place.
type WriteError struct {
	BatchesWritten int
	TotalBatches   int
	Err            error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("index write failed after %d/%d batches: %v",
		e.BatchesWritten, e.TotalBatches, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
