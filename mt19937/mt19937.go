// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package mt19937 implements the 32-bit Mersenne Twister, MT19937: the
// twist and tempering step below are grounded on gonum's
// mathext/prng.MT19937 (itself a port of Nishimura & Matsumoto's
// mt19937ar.c), extended with array seeding, state serialization, and
// GF(2) jump-ahead per spec §3/§4.2.
package mt19937

import (
	"math/big"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/gf2"
)

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff

	// stateBits is the bit width of the raw recurrence state (the mt
	// array only — mti is a cursor into it, not part of the linear
	// recurrence) used to size the GF(2) jump-ahead matrix.
	stateBits = n * 32

	// jumpDistance is the canonical jump-ahead distance for this family:
	// 2^32 full twists of the 624-word state (spec §3: "fixed-distance
	// leap over 2^k states").
	jumpDistance = 1 << 32
)

// MT19937 is the 32-bit Mersenne Twister state: a 624-word key buffer and
// a cursor into it.
type MT19937 struct {
	mt  [n]uint32
	mti int
}

var _ core.Source = (*MT19937)(nil)
var _ core.Uint32Source = (*MT19937)(nil)
var _ core.Jumper = (*MT19937)(nil)
var _ core.Stater = (*MT19937)(nil)
var _ core.Seedable = (*MT19937)(nil)

// New returns an MT19937 seeded with the reference default seed, 5489.
func New() *MT19937 {
	g := &MT19937{}
	g.Seed(5489)
	return g
}

// NewFromSeed seeds a fresh generator with a single 32-bit word.
func NewFromSeed(seed uint32) *MT19937 {
	g := &MT19937{}
	g.Seed(seed)
	return g
}

// NewFromSeedInt validates and decomposes a big-integer seed (max 32
// bits for MT19937) and seeds from it as a one-word array.
func NewFromSeedInt(v *big.Int) (*MT19937, error) {
	words, err := core.DecomposeSeedLE32(v, 32)
	if err != nil {
		return nil, err
	}
	g := &MT19937{}
	if err := g.SeedFromWords(words); err != nil {
		return nil, err
	}
	return g, nil
}

// Seed initializes the generator from a single 32-bit word, using
// Knuth's multiplier 1812433253 per spec §4.2.
func (g *MT19937) Seed(seed uint32) {
	g.mt[0] = seed
	for g.mti = 1; g.mti < n; g.mti++ {
		prev := g.mt[g.mti-1]
		g.mt[g.mti] = 1812433253*(prev^(prev>>30)) + uint32(g.mti)
	}
	g.mti = n
}

// SeedFromWords implements core.Seedable using the reference
// key-initialization schedule (init_by_array).
func (g *MT19937) SeedFromWords(keys []uint32) error {
	if len(keys) == 0 {
		return core.ErrEmptySeedArray
	}
	g.Seed(19650218)
	i, j := 1, 0
	k := n
	if k <= len(keys) {
		k = len(keys)
	}
	for ; k != 0; k-- {
		prev := g.mt[i-1]
		g.mt[i] = (g.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + keys[j] + uint32(j)
		i++
		j++
		if i >= n {
			g.mt[0] = g.mt[n-1]
			i = 1
		}
		if j >= len(keys) {
			j = 0
		}
	}
	for k = n - 1; k != 0; k-- {
		prev := g.mt[i-1]
		g.mt[i] = (g.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			g.mt[0] = g.mt[n-1]
			i = 1
		}
	}
	g.mt[0] = 0x80000000
	g.mti = n
	return nil
}

// twist refills the 624-word buffer.
func (g *MT19937) twist() {
	mag01 := [2]uint32{0, matrixA}
	var y uint32
	kk := 0
	for ; kk < n-m; kk++ {
		y = (g.mt[kk] & upperMask) | (g.mt[kk+1] & lowerMask)
		g.mt[kk] = g.mt[kk+m] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < n-1; kk++ {
		y = (g.mt[kk] & upperMask) | (g.mt[kk+1] & lowerMask)
		g.mt[kk] = g.mt[kk+(m-n)] ^ (y >> 1) ^ mag01[y&1]
	}
	y = (g.mt[n-1] & upperMask) | (g.mt[0] & lowerMask)
	g.mt[n-1] = g.mt[m-1] ^ (y >> 1) ^ mag01[y&1]
	g.mti = 0
}

// Uint32 returns the next tempered 32-bit output word.
func (g *MT19937) Uint32() uint32 {
	if g.mti >= n {
		g.twist()
	}
	y := g.mt[g.mti]
	g.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Uint64 packs two Uint32 draws, high word first, matching spec §4.2's
// "two calls to Uint32" contract for families without a native 64-bit
// output.
func (g *MT19937) Uint64() uint64 {
	hi := uint64(g.Uint32())
	lo := uint64(g.Uint32())
	return hi<<32 | lo
}

// bitLength of the raw recurrence state, excluding mti.
func (g *MT19937) stateToVector() gf2.Vector {
	v := gf2.NewVector(stateBits)
	for i := 0; i < n; i++ {
		for b := 0; b < 32; b++ {
			v.SetBit(i*32+b, uint64((g.mt[i]>>uint(b))&1))
		}
	}
	return v
}

func (g *MT19937) vectorToState(v gf2.Vector) {
	for i := 0; i < n; i++ {
		var word uint32
		for b := 0; b < 32; b++ {
			word |= uint32(v.Bit(i*32+b)) << uint(b)
		}
		g.mt[i] = word
	}
	g.mti = n
}

// rawStep advances the linear recurrence by exactly one twist without
// consuming a tempered output, used only to build the GF(2) transition
// matrix probe-by-probe (see internal/gf2).
func (g *MT19937) rawStep() {
	if g.mti != n {
		g.mti = n
	}
	g.twist()
}

var mt19937Transition *gf2.Matrix

func transitionMatrix() gf2.Matrix {
	if mt19937Transition != nil {
		return *mt19937Transition
	}
	probe := &MT19937{}
	m := gf2.BuildTransition(stateBits,
		probe.vectorToState,
		probe.stateToVector,
		probe.rawStep,
	)
	mt19937Transition = &m
	return m
}

// Jumped advances the generator's state by iter * jumpDistance raw twists,
// per spec §3 invariant and §4.2's jump-ahead contract, using the generic
// GF(2) matrix-power engine described in internal/gf2 rather than a
// precomputed polynomial table.
func (g *MT19937) Jumped(iter uint64) error {
	m := transitionMatrix().Pow(jumpDistance).Pow(iter)
	v := g.stateToVector()
	v = m.MulVec(v)
	g.vectorToState(v)
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *MT19937) BitGeneratorTag() string { return "MT19937" }

// State implements core.Stater.
func (g *MT19937) State() map[string]any {
	key := make([]uint32, n)
	copy(key, g.mt[:])
	return map[string]any{"key": key, "pos": g.mti}
}

// SetState implements core.Stater.
func (g *MT19937) SetState(state map[string]any) error {
	key, ok := state["key"].([]uint32)
	if !ok || len(key) != n {
		return core.ErrMalformedState
	}
	pos, ok := state["pos"].(int)
	if !ok || pos < 0 || pos > n {
		return core.ErrMalformedState
	}
	copy(g.mt[:], key)
	g.mti = pos
	return nil
}
