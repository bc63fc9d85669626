// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gf2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorSetBitAndBit(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	v := NewVector(70)
	v.SetBit(0, 1)
	v.SetBit(63, 1)
	v.SetBit(64, 1)
	v.SetBit(69, 1)

	is.Equal(uint64(1), v.Bit(0))
	is.Equal(uint64(1), v.Bit(63))
	is.Equal(uint64(1), v.Bit(64))
	is.Equal(uint64(1), v.Bit(69))
	is.Equal(uint64(0), v.Bit(1))
}

func TestVectorXorIsSelfInverse(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := Unit(128, 5).Xor(Unit(128, 90))
	zero := a.Xor(a)
	for i := 0; i < 128; i++ {
		is.Equal(uint64(0), zero.Bit(i))
	}
}

func TestIdentityMulVecIsNoOp(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	id := Identity(64)
	v := Unit(64, 3).Xor(Unit(64, 40))
	out := id.MulVec(v)
	for i := 0; i < 64; i++ {
		is.Equal(v.Bit(i), out.Bit(i))
	}
}

func TestIdentityPowZeroIsIdentity(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	id := Identity(32)
	pow := id.Pow(0)
	v := Unit(32, 7)
	is.Equal(id.MulVec(v).Bit(7), pow.MulVec(v).Bit(7))
}

// TestBuildTransitionMatchesRepeatedStep builds the transition matrix of
// a tiny toy linear shift register and checks M^d applied to a state
// agrees with stepping the register d times directly — the equivalence
// the jump-ahead engine relies on for every F2-linear core.
func TestBuildTransitionMatchesRepeatedStep(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	const n = 8
	var state uint8

	fromBits := func(v Vector) {
		state = 0
		for i := 0; i < n; i++ {
			state |= uint8(v.Bit(i)) << uint(i)
		}
	}
	toBits := func() Vector {
		v := NewVector(n)
		for i := 0; i < n; i++ {
			v.SetBit(i, uint64(state>>uint(i))&1)
		}
		return v
	}
	step := func() {
		bit := (state ^ (state >> 1)) & 1
		state = (state >> 1) | (bit << (n - 1))
	}

	m := BuildTransition(n, fromBits, toBits, step)

	for _, d := range []uint64{0, 1, 2, 3, 7, 19} {
		fromBits(toVectorFromByte(0b10110101, n))
		for i := uint64(0); i < d; i++ {
			step()
		}
		want := state

		stateVec := toVectorFromByte(0b10110101, n)
		got := m.Pow(d).MulVec(stateVec)

		var gotByte uint8
		for i := 0; i < n; i++ {
			gotByte |= uint8(got.Bit(i)) << uint(i)
		}
		is.Equal(want, gotByte, "d=%d", d)
	}
}

func toVectorFromByte(b uint8, n int) Vector {
	v := NewVector(n)
	for i := 0; i < n; i++ {
		v.SetBit(i, uint64(b>>uint(i))&1)
	}
	return v
}

func TestMatrixMulAssociatesWithPow(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	const n = 16
	m := Identity(n)
	m.rows[0].SetBit(1, 1)
	m.rows[1].SetBit(2, 1)

	squared := m.Mul(m)
	pow2 := m.Pow(2)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			is.Equal(squared.rows[r].Bit(c), pow2.rows[r].Bit(c))
		}
	}
}
