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


package storage

import "errors"

var (
	// ErrIndexNotFound indicates the named index does not exist yet.
	// Querying before ingesting is a usage error, not an empty result.
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexMismatch indicates an existing index with a different
	// dimension or metric than requested.
	ErrIndexMismatch = errors.New("index exists with different parameters")

	// ErrInvalidIndexName indicates an index name the backend cannot
	// represent, e.g. empty or containing a key separator.
	ErrInvalidIndexName = errors.New("invalid index name")

	// ErrInvalidQuery indicates invalid query parameters (k < 1, empty vector).
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrDimensionMismatch indicates a vector whose length differs from
	// the dimension the index was created with.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
