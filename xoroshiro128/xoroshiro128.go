// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package xoroshiro128 implements the xoroshiro128 family (plus and
// plusplus scramblers) of Blackman & Vigna, grounded on gonum's
// mathext/prng.Xoroshiro128plus (prng_di_unimi.go), extended with a
// selectable output scrambler, state serialization, and GF(2) jump-ahead.
package xoroshiro128

import (
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/gf2"
)

// Variant selects the output scrambler.
type Variant int

const (
	Plus Variant = iota
	PlusPlus
)

const (
	stateBits = 128

	jumpDistance     = 1 << 32
	longJumpDistance = 1 << 48
)

// Xoroshiro128 is the 2x64-bit xoroshiro128 state.
type Xoroshiro128 struct {
	s       [2]uint64
	variant Variant
}

var _ core.Source = (*Xoroshiro128)(nil)
var _ core.Jumper = (*Xoroshiro128)(nil)
var _ core.Stater = (*Xoroshiro128)(nil)

// New returns a plus-scrambled generator seeded via SplitMix64.
func New(seed uint64) *Xoroshiro128 {
	return NewVariant(seed, Plus)
}

// NewVariant returns a generator using the given output scrambler.
func NewVariant(seed uint64, variant Variant) *Xoroshiro128 {
	g := &Xoroshiro128{variant: variant}
	g.Seed(seed)
	return g
}

// NewFromSeedInt validates a big-integer seed (max 64 bits) before seeding
// via SplitMix64.
func NewFromSeedInt(v *big.Int, variant Variant) (*Xoroshiro128, error) {
	words, err := core.DecomposeSeedLE32(v, 64)
	if err != nil {
		return nil, err
	}
	seed := uint64(words[0]) | uint64(words[1])<<32
	return NewVariant(seed, variant), nil
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Seed reseeds via SplitMix64.
func (g *Xoroshiro128) Seed(seed uint64) {
	boot := seed
	g.s[0] = splitmix64(&boot)
	g.s[1] = splitmix64(&boot)
}

// Uint64 returns the next scrambled output and steps the state.
func (g *Xoroshiro128) Uint64() uint64 {
	s0, s1 := g.s[0], g.s[1]
	var result uint64
	if g.variant == PlusPlus {
		result = bits.RotateLeft64(s0+s1, 17) + s0
	} else {
		result = s0 + s1
	}

	s1 ^= s0
	g.s[0] = bits.RotateLeft64(s0, 49) ^ s1 ^ (s1 << 21)
	g.s[1] = bits.RotateLeft64(s1, 28)

	return result
}

func (g *Xoroshiro128) stateToVector() gf2.Vector {
	v := gf2.NewVector(stateBits)
	for i := 0; i < 2; i++ {
		for b := 0; b < 64; b++ {
			v.SetBit(i*64+b, (g.s[i]>>uint(b))&1)
		}
	}
	return v
}

func (g *Xoroshiro128) vectorToState(v gf2.Vector) {
	for i := 0; i < 2; i++ {
		var word uint64
		for b := 0; b < 64; b++ {
			word |= v.Bit(i*64+b) << uint(b)
		}
		g.s[i] = word
	}
}

func (g *Xoroshiro128) rawStep() {
	s0, s1 := g.s[0], g.s[1]
	s1 ^= s0
	g.s[0] = bits.RotateLeft64(s0, 49) ^ s1 ^ (s1 << 21)
	g.s[1] = bits.RotateLeft64(s1, 28)
}

var xoroshiro128Transition *gf2.Matrix

func transitionMatrix() gf2.Matrix {
	if xoroshiro128Transition != nil {
		return *xoroshiro128Transition
	}
	probe := &Xoroshiro128{}
	m := gf2.BuildTransition(stateBits, probe.vectorToState, probe.stateToVector, probe.rawStep)
	xoroshiro128Transition = &m
	return m
}

// Jumped leaps the state forward by iter * jumpDistance raw steps.
func (g *Xoroshiro128) Jumped(iter uint64) error {
	m := transitionMatrix().Pow(jumpDistance).Pow(iter)
	v := m.MulVec(g.stateToVector())
	g.vectorToState(v)
	return nil
}

// LongJumped is a coarser-granularity leap than Jumped, for partitioning a
// smaller number of very long streams.
func (g *Xoroshiro128) LongJumped(iter uint64) error {
	m := transitionMatrix().Pow(longJumpDistance).Pow(iter)
	v := m.MulVec(g.stateToVector())
	g.vectorToState(v)
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *Xoroshiro128) BitGeneratorTag() string { return "Xoroshiro128" }

// State implements core.Stater.
func (g *Xoroshiro128) State() map[string]any {
	s := g.s
	return map[string]any{"s": s[:], "variant": int(g.variant)}
}

// SetState implements core.Stater.
func (g *Xoroshiro128) SetState(state map[string]any) error {
	s, ok := state["s"].([]uint64)
	if !ok || len(s) != 2 {
		return core.ErrMalformedState
	}
	variant, ok := state["variant"].(int)
	if !ok {
		return core.ErrMalformedState
	}
	copy(g.s[:], s)
	g.variant = Variant(variant)
	return nil
}
