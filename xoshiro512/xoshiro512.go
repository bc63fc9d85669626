// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package xoshiro512 implements the xoshiro512 family (plus and plusplus
// scramblers) of Blackman & Vigna, grounded on gonum's
// mathext/prng.Xoshiro256* generalized to an 8-word state, extended with
// state serialization and GF(2) jump-ahead.
package xoshiro512

import (
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/gf2"
)

// Variant selects the output scrambler.
type Variant int

const (
	PlusPlus Variant = iota
	Plus
)

const (
	stateBits = 512

	jumpDistance     = 1 << 32
	longJumpDistance = 1 << 48
)

// Xoshiro512 is the 8x64-bit xoshiro512 state.
type Xoshiro512 struct {
	s       [8]uint64
	variant Variant
}

var _ core.Source = (*Xoshiro512)(nil)
var _ core.Jumper = (*Xoshiro512)(nil)
var _ core.Stater = (*Xoshiro512)(nil)

// New returns a plusplus-scrambled generator seeded via SplitMix64.
func New(seed uint64) *Xoshiro512 {
	return NewVariant(seed, PlusPlus)
}

// NewVariant returns a generator using the given output scrambler.
func NewVariant(seed uint64, variant Variant) *Xoshiro512 {
	g := &Xoshiro512{variant: variant}
	g.Seed(seed)
	return g
}

// NewFromSeedInt validates a big-integer seed (max 64 bits) before seeding
// via SplitMix64.
func NewFromSeedInt(v *big.Int, variant Variant) (*Xoshiro512, error) {
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
func (g *Xoshiro512) Seed(seed uint64) {
	boot := seed
	for i := range g.s {
		g.s[i] = splitmix64(&boot)
	}
}

// Uint64 returns the next scrambled output and steps the state.
func (g *Xoshiro512) Uint64() uint64 {
	var result uint64
	if g.variant == Plus {
		result = g.s[0] + g.s[2]
	} else {
		result = bits.RotateLeft64(g.s[0]+g.s[2], 17) + g.s[2]
	}

	t := g.s[1] << 11
	g.s[2] ^= g.s[0]
	g.s[5] ^= g.s[1]
	g.s[1] ^= g.s[2]
	g.s[7] ^= g.s[3]
	g.s[3] ^= g.s[4]
	g.s[4] ^= g.s[5]
	g.s[0] ^= g.s[6]
	g.s[6] ^= g.s[7]
	g.s[6] ^= t
	g.s[7] = bits.RotateLeft64(g.s[7], 21)

	return result
}

func (g *Xoshiro512) stateToVector() gf2.Vector {
	v := gf2.NewVector(stateBits)
	for i := 0; i < 8; i++ {
		for b := 0; b < 64; b++ {
			v.SetBit(i*64+b, (g.s[i]>>uint(b))&1)
		}
	}
	return v
}

func (g *Xoshiro512) vectorToState(v gf2.Vector) {
	for i := 0; i < 8; i++ {
		var word uint64
		for b := 0; b < 64; b++ {
			word |= v.Bit(i*64+b) << uint(b)
		}
		g.s[i] = word
	}
}

func (g *Xoshiro512) rawStep() {
	t := g.s[1] << 11
	g.s[2] ^= g.s[0]
	g.s[5] ^= g.s[1]
	g.s[1] ^= g.s[2]
	g.s[7] ^= g.s[3]
	g.s[3] ^= g.s[4]
	g.s[4] ^= g.s[5]
	g.s[0] ^= g.s[6]
	g.s[6] ^= g.s[7]
	g.s[6] ^= t
	g.s[7] = bits.RotateLeft64(g.s[7], 21)
}

var xoshiro512Transition *gf2.Matrix

func transitionMatrix() gf2.Matrix {
	if xoshiro512Transition != nil {
		return *xoshiro512Transition
	}
	probe := &Xoshiro512{}
	m := gf2.BuildTransition(stateBits, probe.vectorToState, probe.stateToVector, probe.rawStep)
	xoshiro512Transition = &m
	return m
}

// Jumped leaps the state forward by iter * jumpDistance raw steps.
func (g *Xoshiro512) Jumped(iter uint64) error {
	m := transitionMatrix().Pow(jumpDistance).Pow(iter)
	v := m.MulVec(g.stateToVector())
	g.vectorToState(v)
	return nil
}

// LongJumped is a coarser-granularity leap than Jumped.
func (g *Xoshiro512) LongJumped(iter uint64) error {
	m := transitionMatrix().Pow(longJumpDistance).Pow(iter)
	v := m.MulVec(g.stateToVector())
	g.vectorToState(v)
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *Xoshiro512) BitGeneratorTag() string { return "Xoshiro512" }

// State implements core.Stater.
func (g *Xoshiro512) State() map[string]any {
	s := g.s
	return map[string]any{"s": s[:], "variant": int(g.variant)}
}

// SetState implements core.Stater.
func (g *Xoshiro512) SetState(state map[string]any) error {
	s, ok := state["s"].([]uint64)
	if !ok || len(s) != 8 {
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
