// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package threefry implements Threefry4x64-20, the counter-based
// generator of Salmon, Moraes, Dror & Shaw's Random123 paper: a 256-bit
// counter and a 256-bit key (four words plus a derived parity word) run
// through 20 rounds of add-rotate-xor mixing with a key injection every
// four rounds. Like philox, advance/jump is plain addition to the
// counter via internal/bigword.
package threefry

import (
	"math/big"
	"math/bits"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/bigword"
)

const (
	parity     = 0x1BD11BDAA9FB1BC6
	rounds     = 20
	counterLen = 4
)

var rotations = [8][2]uint{
	{14, 16}, {52, 57}, {23, 18}, {49, 20},
	{25, 33}, {46, 12}, {58, 22}, {32, 32},
}

// Threefry is a Threefry4x64-20 stream.
type Threefry struct {
	ctr    [counterLen]uint64
	key    [4]uint64
	buf    [counterLen]uint64
	bufPos int
}

var _ core.Source = (*Threefry)(nil)
var _ core.Advancer = (*Threefry)(nil)
var _ core.Stater = (*Threefry)(nil)

// New returns a Threefry stream keyed by four 64-bit words with the
// counter zeroed.
func New(key [4]uint64) *Threefry {
	g := &Threefry{key: key}
	g.bufPos = counterLen
	return g
}

// NewFromSeedInt validates a big-integer seed (max 256 bits), using it as
// the key with a zero counter.
func NewFromSeedInt(v *big.Int) (*Threefry, error) {
	words, err := core.DecomposeSeedLE32(v, 256)
	if err != nil {
		return nil, err
	}
	var key [4]uint64
	for i := range key {
		key[i] = uint64(words[2*i]) | uint64(words[2*i+1])<<32
	}
	return New(key), nil
}

func (g *Threefry) ks() [5]uint64 {
	var ks [5]uint64
	acc := uint64(parity)
	for i := 0; i < 4; i++ {
		ks[i] = g.key[i]
		acc ^= g.key[i]
	}
	ks[4] = acc
	return ks
}

func mix(x0, x1 uint64, r uint) (uint64, uint64) {
	x0 += x1
	x1 = bits.RotateLeft64(x1, int(r))
	x1 ^= x0
	return x0, x1
}

func (g *Threefry) block() [counterLen]uint64 {
	ks := g.ks()
	x := g.ctr
	x[0] += ks[0]
	x[1] += ks[1]
	x[2] += ks[2]
	x[3] += ks[3]

	for round := 0; round < rounds; round++ {
		rc := rotations[round%8]
		x[0], x[1] = mix(x[0], x[1], rc[0])
		x[2], x[3] = mix(x[2], x[3], rc[1])

		if round%4 == 3 {
			s := uint64(round/4 + 1)
			x[0] += ks[int(s)%5]
			x[1] += ks[(int(s)+1)%5]
			x[2] += ks[(int(s)+2)%5]
			x[3] += ks[(int(s)+3)%5] + s
		}
	}
	return x
}

func (g *Threefry) incrementCounter() {
	bigword.AddCarry(g.ctr[:], big.NewInt(1))
}

// Uint64 returns the next output word.
func (g *Threefry) Uint64() uint64 {
	if g.bufPos >= counterLen {
		g.buf = g.block()
		g.incrementCounter()
		g.bufPos = 0
	}
	v := g.buf[g.bufPos]
	g.bufPos++
	return v
}

// Advance implements core.Advancer, identically to philox.Advance.
func (g *Threefry) Advance(n *big.Int, counterOnly bool) error {
	delta := new(big.Int).Set(n)
	if !counterOnly {
		consumed := big.NewInt(int64(g.bufPos))
		total := new(big.Int).Add(delta, consumed)
		blockDelta := new(big.Int).Div(total, big.NewInt(counterLen))
		rem := new(big.Int).Mod(total, big.NewInt(counterLen))
		// See philox.Advance: regenerate at blockDelta-1, then step once
		// more so the buffer matches what Uint64 would have produced.
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
func (g *Threefry) BitGeneratorTag() string { return "ThreeFry" }

// State implements core.Stater.
func (g *Threefry) State() map[string]any {
	ctr := g.ctr
	key := g.key
	buf := g.buf
	return map[string]any{
		"ctr": ctr[:], "key": key[:], "buf": buf[:], "buf_pos": g.bufPos,
	}
}

// SetState implements core.Stater.
func (g *Threefry) SetState(state map[string]any) error {
	ctr, ok1 := state["ctr"].([]uint64)
	key, ok2 := state["key"].([]uint64)
	buf, ok3 := state["buf"].([]uint64)
	pos, ok4 := state["buf_pos"].(int)
	if !ok1 || !ok2 || !ok3 || !ok4 || len(ctr) != counterLen || len(key) != 4 || len(buf) != counterLen {
		return core.ErrMalformedState
	}
	copy(g.ctr[:], ctr)
	copy(g.key[:], key)
	copy(g.buf[:], buf)
	g.bufPos = pos
	return nil
}
