// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package core declares the capability set that every algorithm core in
// the prbg module implements. The uniform adapter (package prbg) type
//-asserts a Source against the optional interfaces below once, at
// construction time, and caches the result — it never probes per word.
package core

import (
	"errors"
	"math/big"
)

// Seeding errors shared by every family's big-integer seed constructor.
var (
	ErrNegativeSeed     = errors.New("core: seed must be non-negative")
	ErrSeedTooWide      = errors.New("core: seed exceeds the maximum width for this generator")
	ErrEmptySeedArray   = errors.New("core: seed array must not be empty")
	ErrMalformedState   = errors.New("core: state record has the wrong shape for this generator")
	ErrUnknownStateTag  = errors.New("core: unknown bit_generator state tag")
	ErrSeedAndKeyConflict = errors.New("core: seed and key are mutually exclusive")
)

// DecomposeSeedLE32 validates a big-integer seed against spec §4.2's
// seeding contract (non-negative, within maxBits) and decomposes it
// little-endian into 32-bit words, zero-padded/truncated to exactly
// ceil(maxBits/32) words. Every family's NewFromSeedInt constructor
// funnels through this one validator so the invalid-argument contract is
// enforced identically everywhere.
func DecomposeSeedLE32(v *big.Int, maxBits int) ([]uint32, error) {
	if v.Sign() < 0 {
		return nil, ErrNegativeSeed
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(maxBits))
	if v.Cmp(limit) >= 0 {
		return nil, ErrSeedTooWide
	}
	n := (maxBits + 31) / 32
	words := make([]uint32, n)
	mask := big.NewInt(0xFFFFFFFF)
	tmp := new(big.Int).Set(v)
	for i := 0; i < n; i++ {
		w := new(big.Int).And(tmp, mask)
		words[i] = uint32(w.Uint64())
		tmp.Rsh(tmp, 32)
	}
	return words, nil
}

// Source is the minimum every bit generator core must provide: a 64-bit
// raw output word plus its own state advance.
type Source interface {
	Uint64() uint64
}

// Uint32Source is implemented by cores whose native output word is 32
// bits (e.g. MT19937). Cores without it are served 32-bit draws by the
// adapter's carry, splitting a Uint64 into two halves.
type Uint32Source interface {
	Uint32() uint32
}

// DoubleSource is implemented only by dSFMT, whose natural output is
// already a double in [1,2); NextDouble returns it shifted to [0,1).
type DoubleSource interface {
	NextDouble() float64
}

// Jumper is implemented by cores that support a fixed-distance jump-ahead
// (the family's canonical jump distance D). iter must be non-negative;
// the adapter enforces that before calling Jumped.
type Jumper interface {
	Jumped(iter uint64) error
}

// Advancer is implemented by counter-based cores. When counterOnly is
// true, n is added directly to the counter; otherwise n is interpreted as
// a number of output words, accounting for the core's internal block
// buffer width.
type Advancer interface {
	Advance(n *big.Int, counterOnly bool) error
}

// Stater exposes a name-tagged, round-trippable view of a core's state
// for serialization. Tag must be one of the family tags listed in
// prbg.KnownBitGeneratorTags (state.go in the root package).
type Stater interface {
	BitGeneratorTag() string
	State() map[string]any
	SetState(state map[string]any) error
}

// Seedable is implemented by cores constructed from a SeedSequence-style
// stream of 32-bit words, as opposed to a single integer seed.
type Seedable interface {
	SeedFromWords(words []uint32) error
}
