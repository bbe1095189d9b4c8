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


// Package index couples the embedding provider to the vector store.
//
// The Gateway is the only writer and reader of the named index. On the
// write path it embeds chunks in bounded batches, normalizes the vectors,
// and upserts them with content-derived IDs so that retried calls
// converge instead of duplicating. On the read path it embeds the query
// with the same model and runs a k-nearest-neighbor search.
//
// Entries carry the embedding model identifier in their metadata. A query
// whose gateway is configured with a different model fails with
// ErrModelMismatch: cosine similarity between vectors from different
// embedding spaces carries no meaning, and silently returning such
// matches would look like working retrieval while being noise.
package index
