// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package prbg is a library of pseudo-random bit generators exposing a
// uniform interface over a family of statistically and cryptographically
// motivated algorithms: linear feedback (Mersenne Twister, dSFMT/SFMT),
// xor/shift/rotate (Xoroshiro, Xoshiro, Xorshift), counter-based block
// ciphers (Philox, ThreeFry, AES-CTR, ChaCha, SPECK128), permuted linear
// congruential (PCG32/PCG64), chaotic (JSF), a stream cipher (HC128), and
// hardware entropy (RDRAND).
//
// Every family lives in its own subpackage (mt19937, pcg64, xoshiro256,
// ...) and implements the capability set declared in package core. The
// Generator type in this package is the uniform adapter: it wraps any
// core.Source and exposes NextUint32/NextUint64/NextDouble/NextRaw, and a
// 32-bit carry so 64-bit cores can serve 32-bit draws without discarding
// entropy (the carry always serves the low half of a fresh 64-bit draw
// first, then banks the high half). Each family's package tests its core
// against a known public reference vector where one could be sourced, and
// against internal self-consistency properties (determinism, jump/advance
// equivalence, state round-trip) otherwise; see DESIGN.md for which
// families have a literal reference vector and why the rest do not.
//
// Independent streams are obtained by construction, not locking: distinct
// SeedSequence instances, SeedSequence.Spawn children, or repeated
// Jumped() calls on the same core. A single Generator is a single-owner
// mutable object; concurrent use of one Generator from multiple
// goroutines is undefined, matching spec §5.
package prbg
