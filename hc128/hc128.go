// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package hc128 implements HC-128, Wu's eSTREAM-portfolio stream cipher:
// two 512-word tables, P and Q, updated and read through feedback
// functions f1/f2/g1/g2/h1/h2 to produce one 32-bit output word per step.
// A user-supplied integer seed is folded into the cipher's 128-bit key
// and 128-bit IV with github.com/dchest/siphash, the dependency this
// module's pack also uses for keyed hashing (opencoff-go-chd), rather
// than ad hoc bit-slicing of the seed.
package hc128

import (
	"math/big"
	"math/bits"

	"github.com/dchest/siphash"

	"github.com/sixafter/prbg/core"
)

const tableSize = 512

// HC128 is an HC-128 stream cipher keystream generator.
type HC128 struct {
	p, q [tableSize]uint32
	cnt  uint32
}

var _ core.Source = (*HC128)(nil)
var _ core.Stater = (*HC128)(nil)

// New returns an HC-128 generator from a 128-bit key and a 128-bit IV,
// each as four little-endian 32-bit words.
func New(key, iv [4]uint32) *HC128 {
	g := &HC128{}
	g.init(key, iv)
	return g
}

// NewFromSeedInt folds a single big-integer seed into a 128-bit key and a
// distinct 128-bit IV via siphash-2-4, so two different integer seeds
// never collide key and IV streams.
func NewFromSeedInt(v *big.Int) (*HC128, error) {
	if v.Sign() < 0 {
		return nil, core.ErrNegativeSeed
	}
	seedBytes := v.Bytes()

	var key, iv [4]uint32
	keyHi := siphash.Hash(0x6b6579686931, 0x6b6579686932, seedBytes)
	keyLo := siphash.Hash(0x6b6579686933, 0x6b6579686934, seedBytes)
	ivHi := siphash.Hash(0x6976686931, 0x6976686932, seedBytes)
	ivLo := siphash.Hash(0x6976686933, 0x6976686934, seedBytes)

	key[0], key[1] = uint32(keyHi), uint32(keyHi>>32)
	key[2], key[3] = uint32(keyLo), uint32(keyLo>>32)
	iv[0], iv[1] = uint32(ivHi), uint32(ivHi>>32)
	iv[2], iv[3] = uint32(ivLo), uint32(ivLo>>32)

	return New(key, iv), nil
}

func rotr32(x uint32, r uint) uint32 { return bits.RotateLeft32(x, -int(r)) }
func rotl32(x uint32, r uint) uint32 { return bits.RotateLeft32(x, int(r)) }

func f1(x uint32) uint32 { return rotr32(x, 7) ^ rotr32(x, 18) ^ (x >> 3) }
func f2(x uint32) uint32 { return rotr32(x, 17) ^ rotr32(x, 19) ^ (x >> 10) }

func g1(x, y, z uint32) uint32 { return (rotr32(x, 10) ^ rotr32(z, 23)) + rotr32(y, 8) }
func g2(x, y, z uint32) uint32 { return (rotl32(x, 10) ^ rotl32(z, 23)) + rotl32(y, 8) }

func (g *HC128) h1(x uint32) uint32 {
	return g.q[byte(x)] + g.q[256+int(byte(x>>16))]
}

func (g *HC128) h2(x uint32) uint32 {
	return g.p[byte(x)] + g.p[256+int(byte(x>>16))]
}

// init expands the key/IV into P and Q via the reference W-array
// schedule, then runs 1024 setup steps of the cipher, each folding its
// output word back into the table entry it updated.
func (g *HC128) init(key, iv [4]uint32) {
	var w [1280]uint32
	for i := 0; i < 8; i++ {
		w[i] = key[i%4]
	}
	for i := 8; i < 16; i++ {
		w[i] = iv[i%4]
	}
	for i := 16; i < 1280; i++ {
		w[i] = f2(w[i-2]) + w[i-7] + f1(w[i-15]) + w[i-16] + uint32(i)
	}
	copy(g.p[:], w[256:768])
	copy(g.q[:], w[768:1280])

	g.cnt = 0
	for i := 0; i < 1024; i++ {
		g.stepDiscard()
	}
}

func (g *HC128) stepDiscard() {
	i := g.cnt & 511
	if g.cnt&512 == 0 {
		g.p[i] = (g.p[i] + g1(g.p[(i-3)&511], g.p[(i-10)&511], g.p[(i-511)&511])) ^ g.h1(g.p[(i-12)&511])
	} else {
		g.q[i] = (g.q[i] + g2(g.q[(i-3)&511], g.q[(i-10)&511], g.q[(i-511)&511])) ^ g.h2(g.q[(i-12)&511])
	}
	g.cnt = (g.cnt + 1) & 1023
}

// Uint32 returns the next 32-bit keystream word.
func (g *HC128) Uint32() uint32 {
	i := g.cnt & 511
	var out uint32
	if g.cnt&512 == 0 {
		g.p[i] += g1(g.p[(i-3)&511], g.p[(i-10)&511], g.p[(i-511)&511])
		out = g.h1(g.p[(i-12)&511]) ^ g.p[i]
	} else {
		g.q[i] += g2(g.q[(i-3)&511], g.q[(i-10)&511], g.q[(i-511)&511])
		out = g.h2(g.q[(i-12)&511]) ^ g.q[i]
	}
	g.cnt = (g.cnt + 1) & 1023
	return out
}

// Uint64 packs two Uint32 draws, high word first.
func (g *HC128) Uint64() uint64 {
	hi := uint64(g.Uint32())
	lo := uint64(g.Uint32())
	return hi<<32 | lo
}

// BitGeneratorTag implements core.Stater.
func (g *HC128) BitGeneratorTag() string { return "HC128" }

// State implements core.Stater.
func (g *HC128) State() map[string]any {
	p := g.p
	q := g.q
	return map[string]any{"p": p[:], "q": q[:], "cnt": g.cnt}
}

// SetState implements core.Stater.
func (g *HC128) SetState(state map[string]any) error {
	p, ok1 := state["p"].([]uint32)
	q, ok2 := state["q"].([]uint32)
	cnt, ok3 := state["cnt"].(uint32)
	if !ok1 || !ok2 || !ok3 || len(p) != tableSize || len(q) != tableSize {
		return core.ErrMalformedState
	}
	copy(g.p[:], p)
	copy(g.q[:], q)
	g.cnt = cnt
	return nil
}
