// Package mock provides deterministic test doubles for the ai interfaces.
//
// The mock embedder derives vectors from an FNV hash of the input text, so
// identical text always embeds to the identical vector and similarity-based
// tests are reproducible without a live embedding service.
package mock
