// Package testutil provides testing utilities for posidx.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random text documents over a
// bounded synthetic vocabulary.
//
// # Random Document Generation
//
//	rng := testutil.NewRNG(seed)
//	docs := rng.GenerateDocuments(100, 50, 20) // 100 docs, 50-term vocab, 20 words each
//
// The generator is deterministic for a given seed, so tests built on it
// are reproducible.
package testutil
