// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mt19937

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSeedZeroFirstOutputDeterministic checks scenario S1 of spec §8: seed
// 0's first raw output is well-defined and deterministic.
func TestSeedZeroFirstOutputDeterministic(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeed(0)
	b := NewFromSeed(0)
	is.Equal(a.Uint32(), b.Uint32())
}

// TestSeedZeroKnownVector wires scenario S1 of spec §8 as a literal
// end-to-end check: seed 0's first raw output equals the widely-quoted
// reference value for this exact seed (the generator underlying
// numpy.random.RandomState(0) and a long line of MT19937 ports).
func TestSeedZeroKnownVector(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := NewFromSeed(0)
	is.Equal(uint32(0x8c7f0aac), g.Uint32())
}

// TestDeterminism verifies property 1: two generators from the same seed
// produce identical prefixes.
func TestDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeed(12345)
	b := NewFromSeed(12345)
	for i := 0; i < 2000; i++ {
		is.Equal(a.Uint32(), b.Uint32())
	}
}

// TestKnuthReferenceSequence checks the first few tempered outputs for the
// default seed (5489, Knuth's simple single-word init) against the
// well-known reference sequence produced by that initialization
// (0xD091BB5C, 0x22AE9EF6, 0x...) — the sequence widely quoted for
// std::mt19937's default construction, distinct from mt19937ar.c's own
// init_by_array self-test, which seeds from a four-word key instead.
func TestKnuthReferenceSequence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New()
	want := []uint32{0xD091BB5C, 0x22AE9EF6, 0xE7E1FAEE, 0xD5C31F79}
	for _, w := range want {
		is.Equal(w, g.Uint32())
	}
}

// TestUint64PacksTwoUint32 checks the carry-free two-word packing used by
// families without a native 64-bit output.
func TestUint64PacksTwoUint32(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeed(7)
	b := NewFromSeed(7)
	hi := a.Uint32()
	lo := a.Uint32()
	is.Equal(uint64(hi)<<32|uint64(lo), b.Uint64())
}

// TestStateRoundTrip verifies property 2: serialize, deserialize, and
// continued output matches a generator that never serialized.
func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeed(99)
	for i := 0; i < 17; i++ {
		a.Uint32()
	}
	state := a.State()

	b := New()
	is.NoError(b.SetState(state))

	for i := 0; i < 100; i++ {
		is.Equal(a.Uint32(), b.Uint32())
	}
}

// TestSeedFromWordsRejectsEmpty verifies the "empty seed arrays are
// rejected" contract.
func TestSeedFromWordsRejectsEmpty(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New()
	is.Error(g.SeedFromWords(nil))
}

// TestJumpDeterminism verifies property 5: Jumped() is deterministic and
// changes the state.
func TestJumpDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeed(3)
	b := NewFromSeed(3)
	is.NoError(a.Jumped(1))
	is.NoError(b.Jumped(1))
	is.Equal(a.Uint32(), b.Uint32())

	c := NewFromSeed(3)
	is.NotEqual(a.State(), c.State())
}
