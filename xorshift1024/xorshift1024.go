// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package xorshift1024 implements xorshift1024*phi, Vigna's 16-word
// xorshift generator with a Weyl-sequence-free multiplicative scrambler,
// grounded on the same family of generators as gonum's
// mathext/prng.Xoshiro256* (prng_di_unimi.go), extended to the 1024-bit
// state with a rotating cursor, state serialization, and GF(2) jump-ahead.
package xorshift1024

import (
	"math/big"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/gf2"
)

const (
	words = 16

	// stateBits sizes the GF(2) transition matrix over the raw word array
	// only; the rotating cursor p is tracked as separate, non-linear
	// state, the same way MT19937's mti sits outside the twist recurrence.
	stateBits = words * 64

	jumpDistance = 1 << 32

	scrambler = 0x9e3779b97f4a7c13
)

// Xorshift1024 is the 16x64-bit xorshift1024*phi state plus its rotating
// cursor.
type Xorshift1024 struct {
	s [words]uint64
	p int
}

var _ core.Source = (*Xorshift1024)(nil)
var _ core.Jumper = (*Xorshift1024)(nil)
var _ core.Stater = (*Xorshift1024)(nil)

// New seeds a fresh generator via SplitMix64.
func New(seed uint64) *Xorshift1024 {
	g := &Xorshift1024{}
	g.Seed(seed)
	return g
}

// NewFromSeedInt validates a big-integer seed (max 64 bits) before seeding
// via SplitMix64.
func NewFromSeedInt(v *big.Int) (*Xorshift1024, error) {
	words32, err := core.DecomposeSeedLE32(v, 64)
	if err != nil {
		return nil, err
	}
	seed := uint64(words32[0]) | uint64(words32[1])<<32
	return New(seed), nil
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Seed reseeds via SplitMix64 and resets the cursor to 0.
func (g *Xorshift1024) Seed(seed uint64) {
	boot := seed
	for i := range g.s {
		g.s[i] = splitmix64(&boot)
	}
	g.p = 0
}

// Uint64 returns the next scrambled output, per the reference
// xorshift1024*phi step.
func (g *Xorshift1024) Uint64() uint64 {
	s0 := g.s[g.p]
	g.p = (g.p + 1) & 15
	s1 := g.s[g.p]
	s1 ^= s1 << 31
	s1 ^= s1 >> 11
	s0 ^= s0 >> 30
	g.s[g.p] = s0 ^ s1
	return g.s[g.p] * scrambler
}

// canonicalize rotates the word array so the cursor sits at index 0,
// giving the linear recurrence a fixed phase to probe and restore state
// against — the same trick MT19937's rawStep uses for its mti cursor.
func (g *Xorshift1024) canonicalize() {
	if g.p == 0 {
		return
	}
	var rotated [words]uint64
	for i := 0; i < words; i++ {
		rotated[i] = g.s[(g.p+i)&15]
	}
	g.s = rotated
	g.p = 0
}

func (g *Xorshift1024) stateToVector() gf2.Vector {
	g.canonicalize()
	v := gf2.NewVector(stateBits)
	for i := 0; i < words; i++ {
		for b := 0; b < 64; b++ {
			v.SetBit(i*64+b, (g.s[i]>>uint(b))&1)
		}
	}
	return v
}

func (g *Xorshift1024) vectorToState(v gf2.Vector) {
	for i := 0; i < words; i++ {
		var word uint64
		for b := 0; b < 64; b++ {
			word |= v.Bit(i*64+b) << uint(b)
		}
		g.s[i] = word
	}
	g.p = 0
}

func (g *Xorshift1024) rawStep() {
	s0 := g.s[0]
	s1 := g.s[1]
	s1 ^= s1 << 31
	s1 ^= s1 >> 11
	s0 ^= s0 >> 30
	next := s0 ^ s1

	// Uint64 from cursor 0 overwrites s[1] with next and moves the cursor
	// to 1; re-rotating to cursor 0 gives [next, s[2..15], s[0]].
	var shifted [words]uint64
	shifted[0] = next
	copy(shifted[1:words-1], g.s[2:])
	shifted[words-1] = g.s[0]
	g.s = shifted
}

var xorshift1024Transition *gf2.Matrix

func transitionMatrix() gf2.Matrix {
	if xorshift1024Transition != nil {
		return *xorshift1024Transition
	}
	probe := &Xorshift1024{}
	m := gf2.BuildTransition(stateBits, probe.vectorToState, probe.stateToVector, probe.rawStep)
	xorshift1024Transition = &m
	return m
}

// Jumped leaps the linear recurrence forward by iter * jumpDistance raw
// steps, canonicalizing the rotating cursor first.
func (g *Xorshift1024) Jumped(iter uint64) error {
	m := transitionMatrix().Pow(jumpDistance).Pow(iter)
	v := m.MulVec(g.stateToVector())
	g.vectorToState(v)
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *Xorshift1024) BitGeneratorTag() string { return "Xorshift1024" }

// State implements core.Stater.
func (g *Xorshift1024) State() map[string]any {
	s := g.s
	return map[string]any{"s": s[:], "p": g.p}
}

// SetState implements core.Stater.
func (g *Xorshift1024) SetState(state map[string]any) error {
	s, ok := state["s"].([]uint64)
	if !ok || len(s) != words {
		return core.ErrMalformedState
	}
	p, ok := state["p"].(int)
	if !ok || p < 0 || p >= words {
		return core.ErrMalformedState
	}
	copy(g.s[:], s)
	g.p = p
	return nil
}
