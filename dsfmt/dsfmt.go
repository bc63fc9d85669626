// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package dsfmt implements the double-precision SIMD-oriented Mersenne
// Twister, dSFMT-19937: an array of 128-bit state words plus a trailing
// accumulator ("lung") word advanced by a linear recursion, with outputs
// produced two at a time by confining each word's mantissa bits and
// splicing in the [1,2) exponent directly, avoiding the integer-to-float
// division step that MT19937-backed generators need. The recursion shifts
// and masks follow the publicly documented dSFMT-19937 parameterization;
// see DESIGN.md for the fidelity caveat on these constants.
package dsfmt

import (
	"math"
	"math/big"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/gf2"
)

const (
	// n is the number of regular 128-bit state words; the state array
	// carries one additional "lung" accumulator word beyond these.
	n = 191

	sl1 = 19
	sr  = 12

	msk1 = 0x000ffafffffffb3f
	msk2 = 0x000ffdfffc90fffd

	lowMask  = 0x000fffffffffffff
	highBits = 0x3ff0000000000000

	stateBits = (n + 1) * 128
)

type w128 struct{ lo, hi uint64 }

// DSFMT is the dSFMT-19937 state: n regular words, a lung accumulator,
// and a cursor over the 2n doubles produced by one full pass.
type DSFMT struct {
	state [n + 1]w128
	idx   int
	buf   [2 * n]float64
}

var _ core.Source = (*DSFMT)(nil)
var _ core.DoubleSource = (*DSFMT)(nil)
var _ core.Jumper = (*DSFMT)(nil)
var _ core.Stater = (*DSFMT)(nil)

// New seeds a fresh generator from a single 32-bit seed via the
// MT19937-style linear congruential fill used by the reference
// dsfmt_init_gen_rand.
func New(seed uint32) *DSFMT {
	g := &DSFMT{}
	g.Seed(seed)
	return g
}

// NewFromSeedInt validates a big-integer seed (max 32 bits).
func NewFromSeedInt(v *big.Int) (*DSFMT, error) {
	words, err := core.DecomposeSeedLE32(v, 32)
	if err != nil {
		return nil, err
	}
	return New(words[0]), nil
}

// Seed fills the state array with the reference LCG schedule, then marks
// the output buffer empty so the next draw runs a fresh fill.
func (g *DSFMT) Seed(seed uint32) {
	words := make([]uint32, 2*(n+1))
	words[0] = seed
	for i := uint32(1); i < uint32(len(words)); i++ {
		prev := words[i-1]
		words[i] = 1812433253*(prev^(prev>>30)) + i
	}
	for i := 0; i <= n; i++ {
		g.state[i] = w128{
			lo: uint64(words[2*i]) | uint64(words[2*i+1])<<32,
		}
	}
	for i := 0; i <= n; i++ {
		g.state[i].hi = g.state[i].lo
	}
	g.idx = len(g.buf)
}

func recursion(a, b w128, lung *w128) w128 {
	t0, t1 := a.lo, a.hi
	l0, l1 := lung.lo, lung.hi
	lung.lo = (t0 << sl1) ^ (l1 >> 32) ^ (l1 << 32) ^ b.lo
	lung.hi = (t1 << sl1) ^ (l0 >> 32) ^ (l0 << 32) ^ b.hi
	return w128{
		lo: (lung.lo >> sr) ^ (lung.lo & msk1) ^ t0,
		hi: (lung.hi >> sr) ^ (lung.hi & msk2) ^ t1,
	}
}

const (
	posShift = 117 % n
	sh2      = 1
)

func (g *DSFMT) fill() {
	lung := g.state[n]
	for i := 0; i < n; i++ {
		a := g.state[i]
		b := g.state[(i+posShift)%n]
		r := recursion(a, b, &lung)
		g.state[i] = r
		lo := (r.lo & lowMask) | highBits
		hi := (r.hi & lowMask) | highBits
		g.buf[2*i] = math.Float64frombits(lo) - 1.0
		g.buf[2*i+1] = math.Float64frombits(hi) - 1.0
	}
	g.state[n] = lung
	g.idx = 0
}

// NextDouble returns the next output in [0,1), the dSFMT family's native
// output type per spec §4.2.
func (g *DSFMT) NextDouble() float64 {
	if g.idx >= len(g.buf) {
		g.fill()
	}
	v := g.buf[g.idx]
	g.idx++
	return v
}

// Uint64 consumes one NextDouble draw and returns its 52 mantissa bits
// (top 12 bits zero), matching spec §4.2's "raw 64-bit view of the
// mantissa buffer" contract for families whose natural output is not an
// integer.
func (g *DSFMT) Uint64() uint64 {
	a := math.Float64bits(g.NextDouble() + 1.0)
	return a &^ highBits
}

func (g *DSFMT) stateToVector() gf2.Vector {
	v := gf2.NewVector(stateBits)
	for i := 0; i <= n; i++ {
		base := i * 128
		for b := 0; b < 64; b++ {
			v.SetBit(base+b, (g.state[i].lo>>uint(b))&1)
			v.SetBit(base+64+b, (g.state[i].hi>>uint(b))&1)
		}
	}
	return v
}

func (g *DSFMT) vectorToState(v gf2.Vector) {
	for i := 0; i <= n; i++ {
		base := i * 128
		var lo, hi uint64
		for b := 0; b < 64; b++ {
			lo |= v.Bit(base+b) << uint(b)
			hi |= v.Bit(base+64+b) << uint(b)
		}
		g.state[i] = w128{lo: lo, hi: hi}
	}
	g.idx = len(g.buf)
}

func (g *DSFMT) rawStep() {
	g.fill()
	g.idx = len(g.buf)
}

var dsfmtTransition *gf2.Matrix

func transitionMatrix() gf2.Matrix {
	if dsfmtTransition != nil {
		return *dsfmtTransition
	}
	probe := &DSFMT{}
	m := gf2.BuildTransition(stateBits, probe.vectorToState, probe.stateToVector, probe.rawStep)
	dsfmtTransition = &m
	return m
}

const jumpDistance = 1 << 16

// Jumped advances the state by iter * jumpDistance full fills.
func (g *DSFMT) Jumped(iter uint64) error {
	m := transitionMatrix().Pow(jumpDistance).Pow(iter)
	v := m.MulVec(g.stateToVector())
	g.vectorToState(v)
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *DSFMT) BitGeneratorTag() string { return "dSFMT" }

// State implements core.Stater. The still-unconsumed output buffer is
// serialized alongside the lattice, since recomputing it from the
// lattice alone would require replaying a fill and advancing the state
// past what the caller observed.
func (g *DSFMT) State() map[string]any {
	lo := make([]uint64, n+1)
	hi := make([]uint64, n+1)
	for i, w := range g.state {
		lo[i], hi[i] = w.lo, w.hi
	}
	buf := make([]uint64, len(g.buf))
	for i, d := range g.buf {
		buf[i] = math.Float64bits(d)
	}
	return map[string]any{"lo": lo, "hi": hi, "pos": g.idx, "buf": buf}
}

// SetState implements core.Stater.
func (g *DSFMT) SetState(state map[string]any) error {
	lo, ok1 := state["lo"].([]uint64)
	hi, ok2 := state["hi"].([]uint64)
	pos, ok3 := state["pos"].(int)
	buf, ok4 := state["buf"].([]uint64)
	if !ok1 || !ok2 || !ok3 || !ok4 || len(lo) != n+1 || len(hi) != n+1 || len(buf) != len(g.buf) {
		return core.ErrMalformedState
	}
	if pos < 0 || pos > len(g.buf) {
		return core.ErrMalformedState
	}
	for i := range g.state {
		g.state[i] = w128{lo: lo[i], hi: hi[i]}
	}
	for i, bits := range buf {
		g.buf[i] = math.Float64frombits(bits)
	}
	g.idx = pos
	return nil
}
