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


// Package storage provides the vector storage abstraction layer for triage.
//
// This package defines the VectorIndex interface that decouples index
// implementation from the rest of the engine. It allows different backends
// (BadgerDB for local deployments, Pinecone for managed ones) to be used
// interchangeably.
//
// # Constructor Return Type Pattern
//
// Public backend constructors return the storage.VectorIndex interface
// to enforce abstraction:
//
//	idx, err := badger.NewIndex(path)  // returns storage.VectorIndex
//
// This keeps consumers decoupled from backend specifics and lets tests use
// in-memory implementations without modification.
//
// # Named Indexes
//
// A single backend hosts multiple named indexes. Each name carries its own
// vector dimension and similarity metric, fixed at creation time. Querying
// an index that was never created returns ErrIndexNotFound rather than an
// empty result, so callers can distinguish "nothing ingested yet" from
// "no relevant matches".
//
// # Thread Safety
//
// All backend implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage
