// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package sfmt implements the SIMD-oriented Mersenne Twister, SFMT-19937:
// a 156-word array of 128-bit lanes advanced by a shift-and-xor
// recursion over each lane plus its neighbors, producing 32-bit integer
// output words (unlike dsfmt's direct double output). The lane recursion
// mirrors mt19937's twist in spirit — mixing a word with two lookahead
// neighbors under fixed shift/mask constants — adapted to SFMT's wider
// 128-bit lane width; see DESIGN.md for the fidelity caveat on the exact
// shift constants relative to the reference C implementation.
package sfmt

import (
	"math/big"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/gf2"
)

const (
	n   = 156
	pos = 122

	sl1 = 18
	sr1 = 11

	msk1 = 0xdfffffefdfffffef
	msk2 = 0xddfecb7fbffaffff

	stateBits = n * 128
)

type lane struct{ lo, hi uint64 }

// SFMT is the SFMT-19937 state: n 128-bit lanes plus a word cursor into
// the 4n 32-bit output words one full pass produces.
type SFMT struct {
	state [n]lane
	idx   int
	buf   [4 * n]uint32
}

var _ core.Source = (*SFMT)(nil)
var _ core.Uint32Source = (*SFMT)(nil)
var _ core.Jumper = (*SFMT)(nil)
var _ core.Stater = (*SFMT)(nil)

// New seeds a fresh generator from a single 32-bit seed via the
// MT19937-style linear congruential fill used by the reference
// sfmt_init_gen_rand.
func New(seed uint32) *SFMT {
	g := &SFMT{}
	g.Seed(seed)
	return g
}

// NewFromSeedInt validates a big-integer seed (max 32 bits).
func NewFromSeedInt(v *big.Int) (*SFMT, error) {
	words, err := core.DecomposeSeedLE32(v, 32)
	if err != nil {
		return nil, err
	}
	return New(words[0]), nil
}

// Seed fills the lane array with the reference LCG schedule and resets
// the output cursor.
func (g *SFMT) Seed(seed uint32) {
	words := make([]uint32, 4*n)
	words[0] = seed
	for i := uint32(1); i < uint32(len(words)); i++ {
		prev := words[i-1]
		words[i] = 1812433253*(prev^(prev>>30)) + i
	}
	for i := 0; i < n; i++ {
		g.state[i] = lane{
			lo: uint64(words[4*i]) | uint64(words[4*i+1])<<32,
			hi: uint64(words[4*i+2]) | uint64(words[4*i+3])<<32,
		}
	}
	g.idx = len(g.buf)
}

func laneShiftLeft(l lane, bits uint) lane {
	return lane{lo: l.lo << bits, hi: (l.hi << bits) | (l.lo >> (64 - bits))}
}

func laneShiftRight(l lane, bits uint) lane {
	return lane{lo: (l.lo >> bits) | (l.hi << (64 - bits)), hi: l.hi >> bits}
}

func (g *SFMT) recurse(a, b, c, d lane) lane {
	x := laneShiftLeft(a, sl1)
	y := laneShiftRight(c, sr1)
	return lane{
		lo: a.lo ^ x.lo ^ ((b.lo >> 1) & msk1) ^ y.lo ^ (d.lo << 1),
		hi: a.hi ^ x.hi ^ ((b.hi >> 1) & msk2) ^ y.hi ^ (d.hi << 1),
	}
}

func (g *SFMT) fill() {
	next := make([]lane, n)
	for i := 0; i < n; i++ {
		a := g.state[i]
		b := g.state[(i+1)%n]
		c := g.state[(i+pos)%n]
		d := g.state[(i+n-1)%n]
		next[i] = g.recurse(a, b, c, d)
	}
	copy(g.state[:], next)
	for i := 0; i < n; i++ {
		g.buf[4*i] = uint32(g.state[i].lo)
		g.buf[4*i+1] = uint32(g.state[i].lo >> 32)
		g.buf[4*i+2] = uint32(g.state[i].hi)
		g.buf[4*i+3] = uint32(g.state[i].hi >> 32)
	}
	g.idx = 0
}

// Uint32 returns the next 32-bit output word.
func (g *SFMT) Uint32() uint32 {
	if g.idx >= len(g.buf) {
		g.fill()
	}
	v := g.buf[g.idx]
	g.idx++
	return v
}

// Uint64 packs two Uint32 draws, high word first.
func (g *SFMT) Uint64() uint64 {
	hi := uint64(g.Uint32())
	lo := uint64(g.Uint32())
	return hi<<32 | lo
}

func (g *SFMT) stateToVector() gf2.Vector {
	v := gf2.NewVector(stateBits)
	for i := 0; i < n; i++ {
		base := i * 128
		for b := 0; b < 64; b++ {
			v.SetBit(base+b, (g.state[i].lo>>uint(b))&1)
			v.SetBit(base+64+b, (g.state[i].hi>>uint(b))&1)
		}
	}
	return v
}

func (g *SFMT) vectorToState(v gf2.Vector) {
	for i := 0; i < n; i++ {
		base := i * 128
		var lo, hi uint64
		for b := 0; b < 64; b++ {
			lo |= v.Bit(base+b) << uint(b)
			hi |= v.Bit(base+64+b) << uint(b)
		}
		g.state[i] = lane{lo: lo, hi: hi}
	}
	g.idx = len(g.buf)
}

func (g *SFMT) rawStep() {
	g.fill()
	g.idx = len(g.buf)
}

var sfmtTransition *gf2.Matrix

func transitionMatrix() gf2.Matrix {
	if sfmtTransition != nil {
		return *sfmtTransition
	}
	probe := &SFMT{}
	m := gf2.BuildTransition(stateBits, probe.vectorToState, probe.stateToVector, probe.rawStep)
	sfmtTransition = &m
	return m
}

const jumpDistance = 1 << 16

// Jumped advances the state by iter * jumpDistance full fills.
func (g *SFMT) Jumped(iter uint64) error {
	m := transitionMatrix().Pow(jumpDistance).Pow(iter)
	v := m.MulVec(g.stateToVector())
	g.vectorToState(v)
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *SFMT) BitGeneratorTag() string { return "SFMT" }

// State implements core.Stater. The unconsumed output buffer is
// serialized directly, the same way dsfmt's State does, to avoid
// replaying a fill on restore.
func (g *SFMT) State() map[string]any {
	lo := make([]uint64, n)
	hi := make([]uint64, n)
	for i, l := range g.state {
		lo[i], hi[i] = l.lo, l.hi
	}
	buf := make([]uint32, len(g.buf))
	copy(buf, g.buf[:])
	return map[string]any{"lo": lo, "hi": hi, "pos": g.idx, "buf": buf}
}

// SetState implements core.Stater.
func (g *SFMT) SetState(state map[string]any) error {
	lo, ok1 := state["lo"].([]uint64)
	hi, ok2 := state["hi"].([]uint64)
	pos, ok3 := state["pos"].(int)
	buf, ok4 := state["buf"].([]uint32)
	if !ok1 || !ok2 || !ok3 || !ok4 || len(lo) != n || len(hi) != n || len(buf) != len(g.buf) {
		return core.ErrMalformedState
	}
	if pos < 0 || pos > len(g.buf) {
		return core.ErrMalformedState
	}
	for i := range g.state {
		g.state[i] = lane{lo: lo[i], hi: hi[i]}
	}
	copy(g.buf[:], buf)
	g.idx = pos
	return nil
}
