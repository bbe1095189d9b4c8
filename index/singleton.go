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

import "sync"

// Embedding clients and index connections are expensive to construct, so
// one gateway is shared process-wide. Construction is guarded: the first
// caller builds it, concurrent callers block and reuse, and a failed
// construction is retried by the next caller rather than pinned forever.
var (
	sharedMu      sync.Mutex
	sharedGateway *Gateway
)

// Shared returns the process-wide gateway, constructing it with the given
// factory on first use. Later callers get the memoized instance and their
// factory is ignored.
//
// NewGateway itself never memoizes; each call owns its result. Long-lived
// hosts serving many sessions against one index should build their gateway
// through Shared so every session reuses the same client and connection:
//
//	gw, err := index.Shared(func() (*index.Gateway, error) {
//	    return index.NewGateway(store, embedder, modelID, indexName)
//	})
func Shared(construct func() (*Gateway, error)) (*Gateway, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedGateway != nil {
		return sharedGateway, nil
	}

	gateway, err := construct()
	if err != nil {
		return nil, err
	}
	sharedGateway = gateway
	return sharedGateway, nil
}

// ResetShared drops the memoized gateway. Intended for tests.
func ResetShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedGateway = nil
}
