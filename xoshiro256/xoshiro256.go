// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package xoshiro256 implements the xoshiro256 family (plus, plusplus,
// starstar scramblers) of Blackman & Vigna, grounded on gonum's
// mathext/prng.Xoshiro256* types (prng_di_unimi.go), extended with a
// selectable output scrambler, state serialization, and GF(2) jump-ahead.
package xoshiro256

import (
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg"
	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/gf2"
)

// Variant selects the output scrambler. numpy's default Generator uses
// the starstar scrambler, so it is this package's default too.
type Variant int

const (
	StarStar Variant = iota
	Plus
	PlusPlus
)

const (
	stateBits = 256

	// jumpDistance (2^32 raw steps) is the Jumped leap; longJumpDistance
	// (2^48 raw steps) is the coarser LongJumped leap used to partition
	// streams. Neither equals the reference jump()/long_jump() distance.
	jumpDistance     = 1 << 32
	longJumpDistance = 1 << 48
)

// Xoshiro256 is the 4x64-bit xoshiro256 state.
type Xoshiro256 struct {
	s       [4]uint64
	variant Variant
}

var _ core.Source = (*Xoshiro256)(nil)
var _ core.Jumper = (*Xoshiro256)(nil)
var _ core.Stater = (*Xoshiro256)(nil)

// New returns a starstar-scrambled generator seeded via SplitMix64, the
// reference seeding strategy for the xoshiro family.
func New(seed uint64) *Xoshiro256 {
	return NewVariant(seed, StarStar)
}

// NewVariant returns a generator using the given output scrambler.
func NewVariant(seed uint64, variant Variant) *Xoshiro256 {
	g := &Xoshiro256{variant: variant}
	g.Seed(seed)
	return g
}

// NewStarStarLegacy is the old "Xoshiro256StarStar" constructor, kept for
// callers migrating off that name (spec §8 scenario S6): the returned
// instance's class identity is Xoshiro256 (starstar is this package's
// default scrambler), and the accompanying DeprecationNotice documents the
// rename for callers that check for it rather than failing the call.
func NewStarStarLegacy(seed uint64) (*Xoshiro256, *prbg.DeprecationNotice) {
	return NewVariant(seed, StarStar), &prbg.DeprecationNotice{
		Message: "Xoshiro256StarStar is deprecated; construct Xoshiro256 with Variant=StarStar instead",
	}
}

// NewFromSeedInt validates a big-integer seed (max 64 bits) before
// seeding via SplitMix64.
func NewFromSeedInt(v *big.Int, variant Variant) (*Xoshiro256, error) {
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

// Seed reseeds via SplitMix64, the algorithm's reference bootstrap.
func (g *Xoshiro256) Seed(seed uint64) {
	boot := seed
	for i := range g.s {
		g.s[i] = splitmix64(&boot)
	}
}

// Uint64 returns the next scrambled output and steps the xor-shift-rotate
// state, per spec §4.2: "output first ... then in-place xor-shift-rotate
// update".
func (g *Xoshiro256) Uint64() uint64 {
	var result uint64
	switch g.variant {
	case Plus:
		result = g.s[0] + g.s[3]
	case PlusPlus:
		result = bits.RotateLeft64(g.s[0]+g.s[3], 23) + g.s[0]
	default: // StarStar
		result = bits.RotateLeft64(g.s[1]*5, 7) * 9
	}

	t := g.s[1] << 17
	g.s[2] ^= g.s[0]
	g.s[3] ^= g.s[1]
	g.s[1] ^= g.s[2]
	g.s[0] ^= g.s[3]
	g.s[2] ^= t
	g.s[3] = bits.RotateLeft64(g.s[3], 45)

	return result
}

func (g *Xoshiro256) stateToVector() gf2.Vector {
	v := gf2.NewVector(stateBits)
	for i := 0; i < 4; i++ {
		for b := 0; b < 64; b++ {
			v.SetBit(i*64+b, (g.s[i]>>uint(b))&1)
		}
	}
	return v
}

func (g *Xoshiro256) vectorToState(v gf2.Vector) {
	for i := 0; i < 4; i++ {
		var word uint64
		for b := 0; b < 64; b++ {
			word |= v.Bit(i*64+b) << uint(b)
		}
		g.s[i] = word
	}
}

func (g *Xoshiro256) rawStep() {
	// The xor-shift-rotate update is the same regardless of scrambler
	// choice, so probing it for jump-ahead needs no output call.
	t := g.s[1] << 17
	g.s[2] ^= g.s[0]
	g.s[3] ^= g.s[1]
	g.s[1] ^= g.s[2]
	g.s[0] ^= g.s[3]
	g.s[2] ^= t
	g.s[3] = bits.RotateLeft64(g.s[3], 45)
}

var xoshiro256Transition *gf2.Matrix

func transitionMatrix() gf2.Matrix {
	if xoshiro256Transition != nil {
		return *xoshiro256Transition
	}
	probe := &Xoshiro256{}
	m := gf2.BuildTransition(stateBits, probe.vectorToState, probe.stateToVector, probe.rawStep)
	xoshiro256Transition = &m
	return m
}

// Jumped leaps the state forward by iter * 2^32 raw steps.
func (g *Xoshiro256) Jumped(iter uint64) error {
	m := transitionMatrix().Pow(jumpDistance).Pow(iter)
	v := m.MulVec(g.stateToVector())
	g.vectorToState(v)
	return nil
}

// LongJumped leaps the state forward by iter * 2^48 raw steps, used to
// partition streams at a coarser granularity than Jumped.
func (g *Xoshiro256) LongJumped(iter uint64) error {
	m := transitionMatrix().Pow(longJumpDistance).Pow(iter)
	v := m.MulVec(g.stateToVector())
	g.vectorToState(v)
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *Xoshiro256) BitGeneratorTag() string { return "Xoshiro256" }

// State implements core.Stater.
func (g *Xoshiro256) State() map[string]any {
	s := g.s
	return map[string]any{"s": s[:], "variant": int(g.variant)}
}

// SetState implements core.Stater.
func (g *Xoshiro256) SetState(state map[string]any) error {
	s, ok := state["s"].([]uint64)
	if !ok || len(s) != 4 {
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
