// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package speck128 implements SPECK128/256 run in counter mode as a bit
// generator: the NSA's lightweight ARX block cipher (128-bit block,
// 256-bit key, 34 rounds) encrypts a 128-bit counter block-by-block to
// produce output words, the same counter-mode construction aescounter
// uses for AES-128.
package speck128

import (
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/bigword"
)

const (
	rounds     = 34
	keyWords   = 4
	blockWords = 2
)

// Speck128 is a SPECK128/256-CTR bit generator.
type Speck128 struct {
	roundKeys [rounds]uint64
	ctr       [2]uint64
	buf       [blockWords]uint64
	pos       int
}

var _ core.Source = (*Speck128)(nil)
var _ core.Advancer = (*Speck128)(nil)
var _ core.Stater = (*Speck128)(nil)

// New returns a SPECK128/256 counter generator keyed by four 64-bit
// words, counter zeroed.
func New(key [keyWords]uint64) *Speck128 {
	g := &Speck128{}
	g.expandKey(key)
	g.pos = blockWords
	return g
}

// NewFromSeedInt validates a big-integer seed (max 256 bits) used as the
// key.
func NewFromSeedInt(v *big.Int) (*Speck128, error) {
	words, err := core.DecomposeSeedLE32(v, 256)
	if err != nil {
		return nil, err
	}
	var key [keyWords]uint64
	for i := range key {
		key[i] = uint64(words[2*i]) | uint64(words[2*i+1])<<32
	}
	return New(key), nil
}

// expandKey runs the SPECK key schedule, producing 34 round keys from a
// 4-word (256-bit) master key, per the reference algorithm's m=4 schedule.
func (g *Speck128) expandKey(key [keyWords]uint64) {
	var l [rounds + keyWords - 2]uint64
	k := key[0]
	for i := 0; i < keyWords-1; i++ {
		l[i] = key[i+1]
	}
	g.roundKeys[0] = k
	for i := 0; i < rounds-1; i++ {
		l[i+keyWords-1] = k + bits.RotateLeft64(l[i], -8)
		l[i+keyWords-1] ^= uint64(i)
		k = bits.RotateLeft64(k, 3) ^ l[i+keyWords-1]
		g.roundKeys[i+1] = k
	}
}

func (g *Speck128) encryptBlock(x, y uint64) (uint64, uint64) {
	for i := 0; i < rounds; i++ {
		x = bits.RotateLeft64(x, -8)
		x += y
		x ^= g.roundKeys[i]
		y = bits.RotateLeft64(y, 3)
		y ^= x
	}
	return x, y
}

func (g *Speck128) block128() [blockWords]uint64 {
	x, y := g.encryptBlock(g.ctr[0], g.ctr[1])
	return [blockWords]uint64{x, y}
}

func (g *Speck128) incrementCounter() {
	bigword.AddCarry(g.ctr[:], big.NewInt(1))
}

// Uint64 returns the next output word, encrypting a fresh counter block
// every blockWords words.
func (g *Speck128) Uint64() uint64 {
	if g.pos >= blockWords {
		g.buf = g.block128()
		g.incrementCounter()
		g.pos = 0
	}
	v := g.buf[g.pos]
	g.pos++
	return v
}

// Advance implements core.Advancer, identically in shape to aescounter's.
func (g *Speck128) Advance(n *big.Int, counterOnly bool) error {
	delta := new(big.Int).Set(n)
	if !counterOnly {
		consumed := big.NewInt(int64(g.pos))
		total := new(big.Int).Add(delta, consumed)
		blockDelta := new(big.Int).Div(total, big.NewInt(blockWords))
		rem := new(big.Int).Mod(total, big.NewInt(blockWords))
		// See philox.Advance: regenerate at blockDelta-1, then step once
		// more so the buffer matches what Uint64 would have produced.
		bigword.AddCarry(g.ctr[:], new(big.Int).Sub(blockDelta, big.NewInt(1)))
		g.buf = g.block128()
		g.incrementCounter()
		g.pos = int(rem.Int64())
		return nil
	}
	bigword.AddCarry(g.ctr[:], delta)
	g.pos = blockWords
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *Speck128) BitGeneratorTag() string { return "SPECK128" }

// State implements core.Stater.
func (g *Speck128) State() map[string]any {
	roundKeys := g.roundKeys
	ctr := g.ctr
	buf := g.buf
	return map[string]any{
		"round_keys": roundKeys[:], "ctr": ctr[:], "buf": buf[:], "pos": g.pos,
	}
}

// SetState implements core.Stater.
func (g *Speck128) SetState(state map[string]any) error {
	roundKeys, ok1 := state["round_keys"].([]uint64)
	ctr, ok2 := state["ctr"].([]uint64)
	buf, ok3 := state["buf"].([]uint64)
	pos, ok4 := state["pos"].(int)
	if !ok1 || !ok2 || !ok3 || !ok4 || len(roundKeys) != rounds || len(ctr) != 2 || len(buf) != blockWords {
		return core.ErrMalformedState
	}
	copy(g.roundKeys[:], roundKeys)
	copy(g.ctr[:], ctr)
	copy(g.buf[:], buf)
	g.pos = pos
	return nil
}
