// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package aescounter implements AES-128 run in counter mode as a bit
// generator: a 128-bit counter is encrypted block-by-block to produce
// output words, the same AES-CTR-DRBG construction github.com/sixafter/aes-ctr-drbg
// builds on. Block encryption goes through crypto/aes, which already
// dispatches to hardware AES-NI on supported platforms; golang.org/x/sys/cpu
// is used only to populate a UseAESNI capability flag for callers that want
// to report it, mirroring the feature-detection style of the sneller
// project's aes-hash.go.
package aescounter

import (
	"crypto/aes"
	"crypto/cipher"
	"math/big"

	"golang.org/x/sys/cpu"

	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/internal/bigword"
)

const (
	blockWords = 2 // one 128-bit AES block holds two uint64 output words
)

// UseAESNI reports whether the host CPU exposes hardware AES
// acceleration; crypto/aes uses it transparently regardless, this flag is
// informational only.
var UseAESNI = cpu.X86.HasAES || cpu.ARM64.HasAES

// AESCounter is an AES-128-CTR bit generator.
type AESCounter struct {
	block cipher.Block
	ctr   [2]uint64 // little-endian 128-bit counter
	buf   [blockWords]uint64
	pos   int
}

var _ core.Source = (*AESCounter)(nil)
var _ core.Advancer = (*AESCounter)(nil)
var _ core.Stater = (*AESCounter)(nil)

// New returns an AES-128 counter generator keyed by a 16-byte key with
// the counter zeroed.
func New(key [16]byte) (*AESCounter, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	g := &AESCounter{block: block}
	g.pos = blockWords
	return g, nil
}

// NewFromSeedInt validates a big-integer seed (max 128 bits), zero-padded
// into the AES-128 key.
func NewFromSeedInt(v *big.Int) (*AESCounter, error) {
	words, err := core.DecomposeSeedLE32(v, 128)
	if err != nil {
		return nil, err
	}
	var key [16]byte
	for i, w := range words {
		key[i*4] = byte(w)
		key[i*4+1] = byte(w >> 8)
		key[i*4+2] = byte(w >> 16)
		key[i*4+3] = byte(w >> 24)
	}
	return New(key)
}

func (g *AESCounter) counterBytes() [16]byte {
	var b [16]byte
	lo, hi := g.ctr[0], g.ctr[1]
	for i := 0; i < 8; i++ {
		b[i] = byte(lo >> (8 * i))
		b[8+i] = byte(hi >> (8 * i))
	}
	return b
}

func (g *AESCounter) block128() [blockWords]uint64 {
	in := g.counterBytes()
	var out [16]byte
	g.block.Encrypt(out[:], in[:])
	var words [blockWords]uint64
	for i := range words {
		var w uint64
		for b := 0; b < 8; b++ {
			w |= uint64(out[i*8+b]) << (8 * b)
		}
		words[i] = w
	}
	return words
}

func (g *AESCounter) incrementCounter() {
	bigword.AddCarry(g.ctr[:], big.NewInt(1))
}

// Uint64 returns the next output word, encrypting a fresh counter block
// every blockWords words.
func (g *AESCounter) Uint64() uint64 {
	if g.pos >= blockWords {
		g.buf = g.block128()
		g.incrementCounter()
		g.pos = 0
	}
	v := g.buf[g.pos]
	g.pos++
	return v
}

// Advance implements core.Advancer, identically in shape to philox's.
func (g *AESCounter) Advance(n *big.Int, counterOnly bool) error {
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
func (g *AESCounter) BitGeneratorTag() string { return "AESCounter" }

// State implements core.Stater. The AES round keys are not serialized;
// callers restoring state must reconstruct the generator with the
// original key via New, then call SetState for the counter/buffer.
func (g *AESCounter) State() map[string]any {
	ctr := g.ctr
	buf := g.buf
	return map[string]any{"ctr": ctr[:], "buf": buf[:], "pos": g.pos}
}

// SetState implements core.Stater.
func (g *AESCounter) SetState(state map[string]any) error {
	ctr, ok1 := state["ctr"].([]uint64)
	buf, ok2 := state["buf"].([]uint64)
	pos, ok3 := state["pos"].(int)
	if !ok1 || !ok2 || !ok3 || len(ctr) != 2 || len(buf) != blockWords {
		return core.ErrMalformedState
	}
	copy(g.ctr[:], ctr)
	copy(g.buf[:], buf)
	g.pos = pos
	return nil
}
