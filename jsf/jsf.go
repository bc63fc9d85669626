// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package jsf implements Bob Jenkins' "small fast" generator, JSF64: a
// four-word state advanced by a mix of rotations and additions. JSF has no
// known F2-linear jump-ahead (the additions break linearity over GF(2)),
// so unlike the xoshiro/xorshift/Mersenne Twister families this core does
// not implement core.Jumper, matching spec §4.2's note that JSF supports
// only independent reseeding for stream partitioning.
package jsf

import (
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg/core"
)

const (
	rot1 = 7
	rot2 = 13
	rot3 = 37

	warmupRounds = 20
)

// JSF is Bob Jenkins' four-word small fast generator.
type JSF struct {
	a, b, c, d uint64
}

var _ core.Source = (*JSF)(nil)
var _ core.Stater = (*JSF)(nil)

// New seeds a fresh generator from a single 64-bit seed, per the
// reference raninit schedule.
func New(seed uint64) *JSF {
	g := &JSF{a: 0xf1ea5eed, b: seed, c: seed, d: seed}
	for i := 0; i < warmupRounds; i++ {
		g.Uint64()
	}
	return g
}

// NewFromSeedInt validates a big-integer seed (max 64 bits) before
// seeding.
func NewFromSeedInt(v *big.Int) (*JSF, error) {
	words, err := core.DecomposeSeedLE32(v, 64)
	if err != nil {
		return nil, err
	}
	seed := uint64(words[0]) | uint64(words[1])<<32
	return New(seed), nil
}

// Uint64 returns the next output and advances the state.
func (g *JSF) Uint64() uint64 {
	e := g.a - bits.RotateLeft64(g.b, rot1)
	g.a = g.b ^ bits.RotateLeft64(g.c, rot2)
	g.b = g.c + bits.RotateLeft64(g.d, rot3)
	g.c = g.d + e
	g.d = e + g.a
	return g.d
}

// BitGeneratorTag implements core.Stater.
func (g *JSF) BitGeneratorTag() string { return "JSF" }

// State implements core.Stater.
func (g *JSF) State() map[string]any {
	return map[string]any{"a": g.a, "b": g.b, "c": g.c, "d": g.d}
}

// SetState implements core.Stater.
func (g *JSF) SetState(state map[string]any) error {
	a, ok1 := state["a"].(uint64)
	b, ok2 := state["b"].(uint64)
	c, ok3 := state["c"].(uint64)
	d, ok4 := state["d"].(uint64)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return core.ErrMalformedState
	}
	g.a, g.b, g.c, g.d = a, b, c, d
	return nil
}
