// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package chacha implements the ChaCha stream cipher's block function as
// a counter-based bit generator. The quarter-round permutation is
// grounded directly on skeeto-chacha-go's Cipher.next, adapted from that
// package's 8-word IV to a 64-bit block counter (words 12-13) plus a
// 64-bit stream identifier (words 14-15), so independent streams are
// selected by stream id rather than by a distinct IV buffer. Rounds
// (8, 12, or 20) are caller-selectable, matching spec §4.2's "configurable
// round count" contract.
package chacha

import (
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/bigword"
)

const blockWords = 16

// ErrInvalidRounds is returned by New when rounds is not a positive even
// integer, per spec §7's "invalid rounds (odd, non-positive)" error kind.
var ErrInvalidRounds = errors.New("chacha: rounds must be a positive even integer")

// ChaCha is a ChaCha-family counter-based bit generator.
type ChaCha struct {
	input  [blockWords]uint32
	rounds int
	buf    [blockWords / 2]uint64
	pos    int
}

var _ core.Source = (*ChaCha)(nil)
var _ core.Advancer = (*ChaCha)(nil)
var _ core.Stater = (*ChaCha)(nil)

// New returns a ChaCha generator with a 256-bit key, a 64-bit stream id,
// and the given round count (8, 12, or 20), counter zeroed. rounds must
// be a positive even integer; any other value returns ErrInvalidRounds.
func New(key [32]byte, streamID uint64, rounds int) (*ChaCha, error) {
	if rounds <= 0 || rounds%2 != 0 {
		return nil, ErrInvalidRounds
	}
	g := &ChaCha{rounds: rounds}
	g.input[0] = 0x61707865
	g.input[1] = 0x3320646e
	g.input[2] = 0x79622d32
	g.input[3] = 0x6b206574
	for i := 0; i < 8; i++ {
		g.input[4+i] = binary.LittleEndian.Uint32(key[4*i:])
	}
	g.input[14] = uint32(streamID)
	g.input[15] = uint32(streamID >> 32)
	g.pos = blockWords / 2
	return g, nil
}

// NewFromSeedInt validates a big-integer seed (max 256 bits) used as the
// key, with stream id 0 and 20 rounds.
func NewFromSeedInt(v *big.Int) (*ChaCha, error) {
	words, err := core.DecomposeSeedLE32(v, 256)
	if err != nil {
		return nil, err
	}
	var key [32]byte
	for i, w := range words {
		binary.LittleEndian.PutUint32(key[4*i:], w)
	}
	return New(key, 0, 20)
}

func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 16)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 12)
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 8)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 7)
	return a, b, c, d
}

func (g *ChaCha) block() [blockWords / 2]uint64 {
	var x [blockWords]uint32
	copy(x[:], g.input[:])

	for r := g.rounds; r > 0; r -= 2 {
		x[0], x[4], x[8], x[12] = quarterRound(x[0], x[4], x[8], x[12])
		x[1], x[5], x[9], x[13] = quarterRound(x[1], x[5], x[9], x[13])
		x[2], x[6], x[10], x[14] = quarterRound(x[2], x[6], x[10], x[14])
		x[3], x[7], x[11], x[15] = quarterRound(x[3], x[7], x[11], x[15])

		x[0], x[5], x[10], x[15] = quarterRound(x[0], x[5], x[10], x[15])
		x[1], x[6], x[11], x[12] = quarterRound(x[1], x[6], x[11], x[12])
		x[2], x[7], x[8], x[13] = quarterRound(x[2], x[7], x[8], x[13])
		x[3], x[4], x[9], x[14] = quarterRound(x[3], x[4], x[9], x[14])
	}

	var out [blockWords]uint32
	for i := range out {
		out[i] = x[i] + g.input[i]
	}

	var words [blockWords / 2]uint64
	for i := range words {
		words[i] = uint64(out[2*i]) | uint64(out[2*i+1])<<32
	}
	return words
}

func (g *ChaCha) incrementCounter() {
	ctr := [1]uint64{uint64(g.input[12]) | uint64(g.input[13])<<32}
	bigword.AddCarry(ctr[:], big.NewInt(1))
	g.input[12] = uint32(ctr[0])
	g.input[13] = uint32(ctr[0] >> 32)
}

// Uint64 returns the next output word.
func (g *ChaCha) Uint64() uint64 {
	if g.pos >= len(g.buf) {
		g.buf = g.block()
		g.incrementCounter()
		g.pos = 0
	}
	v := g.buf[g.pos]
	g.pos++
	return v
}

// Advance implements core.Advancer.
func (g *ChaCha) Advance(n *big.Int, counterOnly bool) error {
	ctr := [1]uint64{uint64(g.input[12]) | uint64(g.input[13])<<32}
	delta := new(big.Int).Set(n)
	if !counterOnly {
		consumed := big.NewInt(int64(g.pos))
		total := new(big.Int).Add(delta, consumed)
		blockDelta := new(big.Int).Div(total, big.NewInt(int64(len(g.buf))))
		rem := new(big.Int).Mod(total, big.NewInt(int64(len(g.buf))))
		// See philox.Advance: regenerate at blockDelta-1, then step once
		// more so the buffer matches what Uint64 would have produced.
		bigword.AddCarry(ctr[:], new(big.Int).Sub(blockDelta, big.NewInt(1)))
		g.input[12] = uint32(ctr[0])
		g.input[13] = uint32(ctr[0] >> 32)
		g.buf = g.block()
		g.incrementCounter()
		g.pos = int(rem.Int64())
		return nil
	}
	bigword.AddCarry(ctr[:], delta)
	g.input[12] = uint32(ctr[0])
	g.input[13] = uint32(ctr[0] >> 32)
	g.pos = len(g.buf)
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *ChaCha) BitGeneratorTag() string { return "ChaCha" }

// State implements core.Stater.
func (g *ChaCha) State() map[string]any {
	input := g.input
	buf := g.buf
	return map[string]any{
		"input": input[:], "rounds": g.rounds, "buf": buf[:], "pos": g.pos,
	}
}

// SetState implements core.Stater.
func (g *ChaCha) SetState(state map[string]any) error {
	input, ok1 := state["input"].([]uint32)
	rounds, ok2 := state["rounds"].(int)
	buf, ok3 := state["buf"].([]uint64)
	pos, ok4 := state["pos"].(int)
	if !ok1 || !ok2 || !ok3 || !ok4 || len(input) != blockWords || len(buf) != blockWords/2 {
		return core.ErrMalformedState
	}
	copy(g.input[:], input)
	g.rounds = rounds
	copy(g.buf[:], buf)
	g.pos = pos
	return nil
}
