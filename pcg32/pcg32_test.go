// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package pcg32

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeedAndSeq(42, 54)
	b := NewFromSeedAndSeq(42, 54)
	for i := 0; i < 2000; i++ {
		is.Equal(a.Uint32(), b.Uint32())
	}
}

// TestKnownVectorSeed42Seq54 wires a literal known-vector check: seed=42,
// seq=54 is the canonical example O'Neill's pcg32-demo uses throughout
// the PCG paper and reference implementation, and these six outputs are
// the demo's widely-quoted result for that configuration.
func TestKnownVectorSeed42Seq54(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := NewFromSeedAndSeq(42, 54)
	want := []uint32{
		0xa15c02b7, 0x7b47f409, 0xba1d3330,
		0x83d2f293, 0xbfa4784b, 0xcbed606e,
	}
	for _, w := range want {
		is.Equal(w, g.Uint32())
	}
}

func TestDifferentStreamsDiverge(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeedAndSeq(42, 1)
	b := NewFromSeedAndSeq(42, 2)
	is.NotEqual(a.Uint32(), b.Uint32())
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeedAndSeq(1, 1)
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

// TestJumpedMatchesManualSteps verifies the closed-form LCG skip against
// stepping the generator one output at a time.
func TestJumpedMatchesManualSteps(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeedAndSeq(7, 3)
	b := NewFromSeedAndSeq(7, 3)

	const n = 25
	for i := 0; i < n; i++ {
		b.Uint32()
	}
	is.NoError(a.Jumped(n))
	is.Equal(a.State(), b.State())
}

// TestAdvanceSymmetry verifies spec §8 property 7 for a negative step:
// advance(-d) == advance(period - d), period = 2^64 here.
func TestAdvanceSymmetry(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	period := new(big.Int).Lsh(big.NewInt(1), stateBits)
	delta := new(big.Int).SetUint64(0x9e3779b97f4a7c15)
	negDelta := new(big.Int).Neg(delta)
	wrapped := new(big.Int).Sub(period, delta)

	a := NewFromSeedAndSeq(11, 5)
	is.NoError(a.Advance(negDelta, false))
	want := a.Uint32()

	b := NewFromSeedAndSeq(11, 5)
	is.NoError(b.Advance(wrapped, false))
	is.Equal(want, b.Uint32())
}

func TestAdvanceEquivalentToRepeatedSteps(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeedAndSeq(3, 9)
	b := NewFromSeedAndSeq(3, 9)

	const n = 40
	var last uint32
	for i := 0; i < n+1; i++ {
		last = b.Uint32()
	}
	is.NoError(a.Advance(big.NewInt(n), false))
	is.Equal(last, a.Uint32())
}

func TestSetStateRejectsMalformed(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New()
	is.Error(g.SetState(map[string]any{"state": uint64(1)}))
}
