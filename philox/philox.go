// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package philox implements Philox4x64-10, the counter-based generator of
// Salmon, Moraes, Dror & Shaw's Random123 paper: a 256-bit counter and a
// 128-bit key run through 10 rounds of a Feistel-like multiply-and-swap
// network. Being counter-based, advance/jump is plain integer addition to
// the counter, delegated to internal/bigword the same way the
// block-cipher cores (AES-CTR, ChaCha, SPECK) advance theirs.
package philox

import (
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/bigword"
)

const (
	mul0 = 0xD2E7470EE14C6C93
	mul1 = 0xCA5A826395121157
	w0   = 0x9E3779B97F4A7C15
	w1   = 0xBB67AE8584CAA73B

	rounds     = 10
	counterLen = 4
)

// Philox is a Philox4x64-10 stream: a 256-bit counter, a 128-bit key, and
// a small buffer holding the unconsumed words of the last-generated
// 256-bit block.
type Philox struct {
	ctr    [counterLen]uint64
	key    [2]uint64
	buf    [counterLen]uint64
	bufPos int
}

var _ core.Source = (*Philox)(nil)
var _ core.Advancer = (*Philox)(nil)
var _ core.Stater = (*Philox)(nil)

// New returns a Philox stream keyed by key0/key1 with the counter zeroed.
func New(key0, key1 uint64) *Philox {
	g := &Philox{key: [2]uint64{key0, key1}}
	g.bufPos = counterLen
	return g
}

// NewFromSeedInt validates a big-integer seed (max 128 bits), using it as
// the key with a zero counter.
func NewFromSeedInt(v *big.Int) (*Philox, error) {
	words, err := core.DecomposeSeedLE32(v, 128)
	if err != nil {
		return nil, err
	}
	key0 := uint64(words[0]) | uint64(words[1])<<32
	key1 := uint64(words[2]) | uint64(words[3])<<32
	return New(key0, key1), nil
}

func mulhilo(a, b uint64) (hi, lo uint64) {
	hi, lo = bits.Mul64(a, b)
	return
}

func (g *Philox) block() [counterLen]uint64 {
	ctr := g.ctr
	key0, key1 := g.key[0], g.key[1]
	for r := 0; r < rounds; r++ {
		hi0, lo0 := mulhilo(mul0, ctr[0])
		hi1, lo1 := mulhilo(mul1, ctr[2])
		ctr = [counterLen]uint64{
			hi1 ^ ctr[1] ^ key0,
			lo1,
			hi0 ^ ctr[3] ^ key1,
			lo0,
		}
		key0 += w0
		key1 += w1
	}
	return ctr
}

// incrementCounter adds 1 to the 256-bit little-endian counter.
func (g *Philox) incrementCounter() {
	bigword.AddCarry(g.ctr[:], big.NewInt(1))
}

// Uint64 returns the next output word, generating a fresh block and
// incrementing the counter every counterLen words.
func (g *Philox) Uint64() uint64 {
	if g.bufPos >= counterLen {
		g.buf = g.block()
		g.incrementCounter()
		g.bufPos = 0
	}
	v := g.buf[g.bufPos]
	g.bufPos++
	return v
}

// Advance implements core.Advancer. When counterOnly is true, n is added
// directly to the 256-bit counter; otherwise n counts output words and is
// converted to a counter delta accounting for the 4-word block buffer.
func (g *Philox) Advance(n *big.Int, counterOnly bool) error {
	delta := new(big.Int).Set(n)
	if !counterOnly {
		consumed := big.NewInt(int64(g.bufPos))
		total := new(big.Int).Add(delta, consumed)
		blockDelta := new(big.Int).Div(total, big.NewInt(counterLen))
		rem := new(big.Int).Mod(total, big.NewInt(counterLen))
		// The buffer must hold the block one short of the target counter
		// (Uint64 always regenerates with the pre-increment counter), so
		// advance to blockDelta-1 before regenerating, then step once more.
		bigword.AddCarry(g.ctr[:], new(big.Int).Sub(blockDelta, big.NewInt(1)))
		g.buf = g.block()
		g.incrementCounter()
		g.bufPos = int(rem.Int64())
		return nil
	}
	bigword.AddCarry(g.ctr[:], delta)
	g.bufPos = counterLen
	return nil
}

// BitGeneratorTag implements core.Stater.
func (g *Philox) BitGeneratorTag() string { return "Philox" }

// State implements core.Stater.
func (g *Philox) State() map[string]any {
	ctr := g.ctr
	key := g.key
	buf := g.buf
	return map[string]any{
		"ctr": ctr[:], "key": key[:], "buf": buf[:], "buf_pos": g.bufPos,
	}
}

// SetState implements core.Stater.
func (g *Philox) SetState(state map[string]any) error {
	ctr, ok1 := state["ctr"].([]uint64)
	key, ok2 := state["key"].([]uint64)
	buf, ok3 := state["buf"].([]uint64)
	pos, ok4 := state["buf_pos"].(int)
	if !ok1 || !ok2 || !ok3 || !ok4 || len(ctr) != counterLen || len(key) != 2 || len(buf) != counterLen {
		return core.ErrMalformedState
	}
	copy(g.ctr[:], ctr)
	copy(g.key[:], key)
	copy(g.buf[:], buf)
	g.bufPos = pos
	return nil
}
