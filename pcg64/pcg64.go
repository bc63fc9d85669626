// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package pcg64 implements PCG XSL-RR 128/64, O'Neill's 128-bit-state,
// 64-bit-output permuted congruential generator. The 128-bit LCG state is
// carried as two little-endian 64-bit words and stepped/jumped through
// internal/bigword, the same fixed-width-arithmetic helper used by the
// counter-based cores.
package pcg64

import (
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/bigword"
)

const stateBits = 128

// PCG64's default 128-bit multiplier and a default stream constant, per
// O'Neill's reference pcg64_random_r / PCG_DEFAULT_MULTIPLIER_128.
var (
	defaultMult = mustHex("2360ed051fc65da44385df649fccf645")
	defaultSeq  = mustHex("5851f42d4c957f2d14057b7ef767814f")
)

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("pcg64: invalid constant")
	}
	return v
}

// PCG64 is a single 128-bit PCG stream.
type PCG64 struct {
	state [2]uint64 // little-endian: state[0] low, state[1] high
	inc   [2]uint64
	mult  [2]uint64
}

var _ core.Source = (*PCG64)(nil)
var _ core.Jumper = (*PCG64)(nil)
var _ core.Advancer = (*PCG64)(nil)
var _ core.Stater = (*PCG64)(nil)

// New returns a PCG64 seeded with state 0 on the default stream.
func New() *PCG64 {
	g := &PCG64{}
	bigword.FromBigInt(defaultMult, g.mult[:])
	g.SeedSeq(new(big.Int), defaultSeq)
	return g
}

// NewFromSeedInt validates a big-integer seed (max 128 bits) and seeds it
// on the default stream.
func NewFromSeedInt(v *big.Int) (*PCG64, error) {
	words, err := core.DecomposeSeedLE32(v, 128)
	if err != nil {
		return nil, err
	}
	seed := make([]uint64, 2)
	for i := range seed {
		seed[i] = uint64(words[2*i]) | uint64(words[2*i+1])<<32
	}
	g := &PCG64{}
	bigword.FromBigInt(defaultMult, g.mult[:])
	g.SeedSeq(bigword.ToBigInt(seed), defaultSeq)
	return g, nil
}

// NewFromSeedAndSeq seeds state and stream together from big integers.
func NewFromSeedAndSeq(initState, initSeq *big.Int) *PCG64 {
	g := &PCG64{}
	bigword.FromBigInt(defaultMult, g.mult[:])
	g.SeedSeq(initState, initSeq)
	return g
}

// SeedSeq follows the reference seeding schedule: inc forced odd, one LCG
// step, seed added, another LCG step.
func (g *PCG64) SeedSeq(initState, initSeq *big.Int) {
	seq := new(big.Int).Lsh(initSeq, 1)
	seq.Or(seq, big.NewInt(1))
	bigword.FromBigInt(seq, g.inc[:])

	for i := range g.state {
		g.state[i] = 0
	}
	g.step()

	cur := bigword.ToBigInt(g.state[:])
	cur.Add(cur, initState)
	mod := new(big.Int).Lsh(big.NewInt(1), stateBits)
	cur.Mod(cur, mod)
	bigword.FromBigInt(cur, g.state[:])
	g.step()
}

func (g *PCG64) step() {
	state := bigword.ToBigInt(g.state[:])
	mult := bigword.ToBigInt(g.mult[:])
	inc := bigword.ToBigInt(g.inc[:])
	state.Mul(state, mult)
	state.Add(state, inc)
	mod := new(big.Int).Lsh(big.NewInt(1), stateBits)
	state.Mod(state, mod)
	bigword.FromBigInt(state, g.state[:])
}

// Uint64 returns the next XSL-RR permuted output.
func (g *PCG64) Uint64() uint64 {
	lo, hi := g.state[0], g.state[1]
	g.step()
	rot := uint(hi >> 58)
	xored := hi ^ lo
	return bits.RotateLeft64(xored, -int(rot))
}

// Jumped applies the closed-form LCG skip for iter steps of the 128-bit
// state via internal/bigword.LCGAdvance.
func (g *PCG64) Jumped(iter uint64) error {
	mult := bigword.ToBigInt(g.mult[:])
	inc := bigword.ToBigInt(g.inc[:])
	delta := new(big.Int).SetUint64(iter)
	m, p := bigword.LCGAdvance(mult, inc, delta, stateBits)

	state := bigword.ToBigInt(g.state[:])
	state.Mul(state, m)
	state.Add(state, p)
	mod := new(big.Int).Lsh(big.NewInt(1), stateBits)
	state.Mod(state, mod)
	bigword.FromBigInt(state, g.state[:])
	return nil
}

// Advance implements core.Advancer via the same closed-form LCG skip
// Jumped uses, accepting an arbitrary (possibly negative) big.Int delta
// rather than Jumped's unsigned iter. PCG has no separate counter/output
// split the way the block-cipher cores do, so counterOnly has no effect:
// advancing the state by n is the only notion of "advance" this family
// has, and n is reduced modulo the LCG's period, 2^128, by
// bigword.LCGAdvance — satisfying spec §8 property 7's
// advance(n) == advance(n + period) == advance(n - period) symmetry.
func (g *PCG64) Advance(n *big.Int, counterOnly bool) error {
	mult := bigword.ToBigInt(g.mult[:])
	inc := bigword.ToBigInt(g.inc[:])
	m, p := bigword.LCGAdvance(mult, inc, n, stateBits)

	state := bigword.ToBigInt(g.state[:])
	state.Mul(state, m)
	state.Add(state, p)
	mod := new(big.Int).Lsh(big.NewInt(1), stateBits)
	state.Mod(state, mod)
	bigword.FromBigInt(state, g.state[:])
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *PCG64) BitGeneratorTag() string { return "PCG64" }

// State implements core.Stater.
func (g *PCG64) State() map[string]any {
	state := g.state
	inc := g.inc
	mult := g.mult
	return map[string]any{"state": state[:], "inc": inc[:], "mult": mult[:]}
}

// SetState implements core.Stater.
func (g *PCG64) SetState(state map[string]any) error {
	s, ok1 := state["state"].([]uint64)
	inc, ok2 := state["inc"].([]uint64)
	mult, ok3 := state["mult"].([]uint64)
	if !ok1 || !ok2 || !ok3 || len(s) != 2 || len(inc) != 2 || len(mult) != 2 {
		return core.ErrMalformedState
	}
	copy(g.state[:], s)
	copy(g.inc[:], inc)
	copy(g.mult[:], mult)
	return nil
}
