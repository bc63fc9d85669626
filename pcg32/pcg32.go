// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package pcg32 implements PCG XSH-RR 64/32, O'Neill's 64-bit-state,
// 32-bit-output permuted congruential generator, grounded on the same
// LCG-skip technique as internal/bigword.LCGAdvance (O'Neill's
// pcg_advance_lcg scheme) and on this module's counter-based core
// conventions (internal/bigword, state tagging).
package pcg32

import (
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/bigword"
)

const (
	defaultMult = 6364136223846793005
	stateBits   = 64
)

// PCG32 is a single PCG stream: a 64-bit LCG state plus an odd 64-bit
// stream increment.
type PCG32 struct {
	state uint64
	inc   uint64
	mult  uint64
}

var _ core.Source = (*PCG32)(nil)
var _ core.Uint32Source = (*PCG32)(nil)
var _ core.Jumper = (*PCG32)(nil)
var _ core.Advancer = (*PCG32)(nil)
var _ core.Stater = (*PCG32)(nil)

// New returns a PCG32 seeded with state 0 and the reference default
// stream (inc derived from 1442695040888963407).
func New() *PCG32 {
	g := &PCG32{mult: defaultMult}
	g.SeedSeq(0, 1442695040888963407)
	return g
}

// NewFromSeedInt validates a 64-bit state seed and derives its stream
// increment from a fixed default sequence identifier, per spec §4.2.
func NewFromSeedInt(v *big.Int) (*PCG32, error) {
	words, err := core.DecomposeSeedLE32(v, 64)
	if err != nil {
		return nil, err
	}
	seed := uint64(words[0]) | uint64(words[1])<<32
	g := &PCG32{mult: defaultMult}
	g.SeedSeq(seed, 1442695040888963407)
	return g, nil
}

// NewFromSeedAndSeq seeds state and stream together, matching the
// reference pcg32_srandom_r(state, seq) contract.
func NewFromSeedAndSeq(state, seq uint64) *PCG32 {
	g := &PCG32{mult: defaultMult}
	g.SeedSeq(state, seq)
	return g
}

// SeedSeq implements the reference seeding schedule: inc is forced odd,
// then the LCG is stepped once before and once after the seed is added.
func (g *PCG32) SeedSeq(initState, initSeq uint64) {
	g.inc = (initSeq << 1) | 1
	g.state = 0
	g.step()
	g.state += initState
	g.step()
}

func (g *PCG32) step() {
	g.state = g.state*g.mult + g.inc
}

// Uint32 returns the next XSH-RR permuted output.
func (g *PCG32) Uint32() uint32 {
	old := g.state
	g.step()
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}

// Uint64 packs two Uint32 draws, high word first.
func (g *PCG32) Uint64() uint64 {
	hi := uint64(g.Uint32())
	lo := uint64(g.Uint32())
	return hi<<32 | lo
}

// Jumped applies the closed-form LCG skip for iter steps of the 64-bit
// state, using internal/bigword.LCGAdvance rather than a per-step loop.
func (g *PCG32) Jumped(iter uint64) error {
	mult := new(big.Int).SetUint64(g.mult)
	inc := new(big.Int).SetUint64(g.inc)
	delta := new(big.Int).SetUint64(iter)
	m, p := bigword.LCGAdvance(mult, inc, delta, stateBits)

	state := new(big.Int).SetUint64(g.state)
	state.Mul(state, m)
	state.Add(state, p)
	mod := new(big.Int).Lsh(big.NewInt(1), stateBits)
	state.Mod(state, mod)
	g.state = state.Uint64()
	return nil
}

// Advance implements core.Advancer via the same closed-form LCG skip
// Jumped uses, accepting an arbitrary (possibly negative) big.Int delta
// rather than Jumped's unsigned iter. PCG has no separate counter/output
// split, so counterOnly has no effect; n is reduced modulo the LCG's
// period, 2^64, satisfying spec §8 property 7's advance symmetry.
func (g *PCG32) Advance(n *big.Int, counterOnly bool) error {
	mult := new(big.Int).SetUint64(g.mult)
	inc := new(big.Int).SetUint64(g.inc)
	m, p := bigword.LCGAdvance(mult, inc, n, stateBits)

	state := new(big.Int).SetUint64(g.state)
	state.Mul(state, m)
	state.Add(state, p)
	mod := new(big.Int).Lsh(big.NewInt(1), stateBits)
	state.Mod(state, mod)
	g.state = state.Uint64()
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *PCG32) BitGeneratorTag() string { return "PCG32" }

// State implements core.Stater.
func (g *PCG32) State() map[string]any {
	return map[string]any{"state": g.state, "inc": g.inc, "mult": g.mult}
}

// SetState implements core.Stater.
func (g *PCG32) SetState(state map[string]any) error {
	s, ok1 := state["state"].(uint64)
	inc, ok2 := state["inc"].(uint64)
	mult, ok3 := state["mult"].(uint64)
	if !ok1 || !ok2 || !ok3 {
		return core.ErrMalformedState
	}
	g.state = s
	g.inc = inc
	g.mult = mult
	return nil
}
