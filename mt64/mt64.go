// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package mt64 implements the 64-bit Mersenne Twister, MT19937-64,
// grounded on gonum's mathext/prng.MT19937_64 (a port of Matsumoto &
// Nishimura's mt19937-64.c), extended with array seeding, state
// serialization, and GF(2) jump-ahead per spec §3/§4.2.
package mt64

import (
	"math/big"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/gf2"
)

const (
	nn        = 312
	mm        = 156
	matrixA   = 0xB5026F5AA96619E9
	upperMask = 0xFFFFFFFF80000000
	lowerMask = 0x7FFFFFFF

	stateBits    = nn * 64
	jumpDistance = 1 << 48
)

// MT64 is the 64-bit Mersenne Twister state: a 312-word key buffer and a
// cursor into it.
type MT64 struct {
	mt  [nn]uint64
	mti int
}

var _ core.Source = (*MT64)(nil)
var _ core.Jumper = (*MT64)(nil)
var _ core.Stater = (*MT64)(nil)
var _ core.Seedable = (*MT64)(nil)

// New returns an MT64 seeded with the reference default seed, 5489.
func New() *MT64 {
	g := &MT64{}
	g.Seed(5489)
	return g
}

// NewFromSeed seeds a fresh generator with a single 64-bit word.
func NewFromSeed(seed uint64) *MT64 {
	g := &MT64{}
	g.Seed(seed)
	return g
}

// NewFromSeedInt validates and decomposes a big-integer seed (max 64
// bits) and seeds via the array schedule.
func NewFromSeedInt(v *big.Int) (*MT64, error) {
	words32, err := core.DecomposeSeedLE32(v, 64)
	if err != nil {
		return nil, err
	}
	keys := make([]uint64, 2)
	keys[0] = uint64(words32[0]) | uint64(words32[1])<<32
	g := &MT64{}
	if err := g.SeedFromWords64(keys[:1]); err != nil {
		return nil, err
	}
	return g, nil
}

// Seed initializes the generator from a single 64-bit word, using
// multiplier 6364136223846793005 per spec §4.2.
func (g *MT64) Seed(seed uint64) {
	g.mt[0] = seed
	for g.mti = 1; g.mti < nn; g.mti++ {
		prev := g.mt[g.mti-1]
		g.mt[g.mti] = 6364136223846793005*(prev^(prev>>62)) + uint64(g.mti)
	}
	g.mti = nn
}

// SeedFromWords implements core.Seedable from 32-bit words, pairing them
// little-endian into 64-bit keys.
func (g *MT64) SeedFromWords(words []uint32) error {
	if len(words) == 0 {
		return core.ErrEmptySeedArray
	}
	keys := make([]uint64, (len(words)+1)/2)
	for i := range keys {
		lo := uint64(words[2*i])
		var hi uint64
		if 2*i+1 < len(words) {
			hi = uint64(words[2*i+1])
		}
		keys[i] = lo | hi<<32
	}
	return g.SeedFromWords64(keys)
}

// SeedFromWords64 seeds from native 64-bit keys via the reference
// init_by_array64 schedule.
func (g *MT64) SeedFromWords64(keys []uint64) error {
	if len(keys) == 0 {
		return core.ErrEmptySeedArray
	}
	g.Seed(19650218)
	i, j := 1, 0
	k := nn
	if k <= len(keys) {
		k = len(keys)
	}
	for ; k != 0; k-- {
		prev := g.mt[i-1]
		g.mt[i] = (g.mt[i] ^ ((prev ^ (prev >> 62)) * 3935559000370003845)) + keys[j] + uint64(j)
		i++
		j++
		if i >= nn {
			g.mt[0] = g.mt[nn-1]
			i = 1
		}
		if j >= len(keys) {
			j = 0
		}
	}
	for k = nn - 1; k != 0; k-- {
		prev := g.mt[i-1]
		g.mt[i] = (g.mt[i] ^ ((prev ^ (prev >> 62)) * 2862933555777941757)) - uint64(i)
		i++
		if i >= nn {
			g.mt[0] = g.mt[nn-1]
			i = 1
		}
	}
	g.mt[0] = 1 << 63
	g.mti = nn
	return nil
}

func (g *MT64) twist() {
	mag01 := [2]uint64{0, matrixA}
	var x uint64
	i := 0
	for ; i < nn-mm; i++ {
		x = (g.mt[i] & upperMask) | (g.mt[i+1] & lowerMask)
		g.mt[i] = g.mt[i+mm] ^ (x >> 1) ^ mag01[x&1]
	}
	for ; i < nn-1; i++ {
		x = (g.mt[i] & upperMask) | (g.mt[i+1] & lowerMask)
		g.mt[i] = g.mt[i+(mm-nn)] ^ (x >> 1) ^ mag01[x&1]
	}
	x = (g.mt[nn-1] & upperMask) | (g.mt[0] & lowerMask)
	g.mt[nn-1] = g.mt[mm-1] ^ (x >> 1) ^ mag01[x&1]
	g.mti = 0
}

// Uint64 returns the next tempered 64-bit output word.
func (g *MT64) Uint64() uint64 {
	if g.mti >= nn {
		g.twist()
	}
	x := g.mt[g.mti]
	g.mti++

	x ^= (x >> 29) & 0x5555555555555555
	x ^= (x << 17) & 0x71D67FFFEDA60000
	x ^= (x << 37) & 0xFFF7EEE000000000
	x ^= x >> 43
	return x
}

func (g *MT64) stateToVector() gf2.Vector {
	v := gf2.NewVector(stateBits)
	for i := 0; i < nn; i++ {
		for b := 0; b < 64; b++ {
			v.SetBit(i*64+b, (g.mt[i]>>uint(b))&1)
		}
	}
	return v
}

func (g *MT64) vectorToState(v gf2.Vector) {
	for i := 0; i < nn; i++ {
		var word uint64
		for b := 0; b < 64; b++ {
			word |= v.Bit(i*64+b) << uint(b)
		}
		g.mt[i] = word
	}
	g.mti = nn
}

func (g *MT64) rawStep() {
	if g.mti != nn {
		g.mti = nn
	}
	g.twist()
}

var mt64Transition *gf2.Matrix

func transitionMatrix() gf2.Matrix {
	if mt64Transition != nil {
		return *mt64Transition
	}
	probe := &MT64{}
	m := gf2.BuildTransition(stateBits, probe.vectorToState, probe.stateToVector, probe.rawStep)
	mt64Transition = &m
	return m
}

// Jumped advances the state by iter * jumpDistance raw twists.
func (g *MT64) Jumped(iter uint64) error {
	m := transitionMatrix().Pow(jumpDistance).Pow(iter)
	v := g.stateToVector()
	v = m.MulVec(v)
	g.vectorToState(v)
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *MT64) BitGeneratorTag() string { return "MT19937_64" }

// State implements core.Stater.
func (g *MT64) State() map[string]any {
	key := make([]uint64, nn)
	copy(key, g.mt[:])
	return map[string]any{"key": key, "pos": g.mti}
}

// SetState implements core.Stater.
func (g *MT64) SetState(state map[string]any) error {
	key, ok := state["key"].([]uint64)
	if !ok || len(key) != nn {
		return core.ErrMalformedState
	}
	pos, ok := state["pos"].(int)
	if !ok || pos < 0 || pos > nn {
		return core.ErrMalformedState
	}
	copy(g.mt[:], key)
	g.mti = pos
	return nil
}
