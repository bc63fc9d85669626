// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package aescounter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var key [16]byte
	for i := range key {
		key[i] = byte(i)
	}
	a, err := New(key)
	is.NoError(err)
	b, err := New(key)
	is.NoError(err)

	for i := 0; i < 1000; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

// TestAllZeroKeyKnownVector checks the first block against the classic
// all-zero-key, all-zero-plaintext AES-128 known-answer vector quoted
// across independent implementations (OpenSSL's and Bouncy Castle's
// AES-128-ECB test suites among them): ciphertext
// 66e94bd4ef8a2c3b884cfa59ca342b2e, unpacked here into the two
// little-endian output words block128 produces from it.
func TestAllZeroKeyKnownVector(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var key [16]byte
	g, err := New(key)
	is.NoError(err)

	is.Equal(uint64(0x3b2c8aefd44be966), g.Uint64())
	is.Equal(uint64(0x2e2b34ca59fa4c88), g.Uint64())
}

func TestDifferentKeysDiverge(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var key1, key2 [16]byte
	key2[0] = 1
	a, err := New(key1)
	is.NoError(err)
	b, err := New(key2)
	is.NoError(err)
	is.NotEqual(a.Uint64(), b.Uint64())
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var key [16]byte
	a, err := New(key)
	is.NoError(err)
	for i := 0; i < 7; i++ {
		a.Uint64()
	}
	state := a.State()

	b, err := New(key)
	is.NoError(err)
	is.NoError(b.SetState(state))
	for i := 0; i < 50; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

// TestAdvanceCounterOnlyWraps128BitCounter verifies scenario S5: a fresh
// generator, advance(2^129, counter_only=True), leaves state identical to
// the initial state (the 128-bit counter wraps at 2^128, and 2^129 is an
// even multiple of that period).
func TestAdvanceCounterOnlyWraps128BitCounter(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var key [16]byte
	g, err := New(key)
	is.NoError(err)
	initial := g.State()

	twoPow129 := new(big.Int).Lsh(big.NewInt(1), 129)
	is.NoError(g.Advance(twoPow129, true))
	is.Equal(initial, g.State())
}

func TestAdvanceByWordsMatchesManualDraws(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var key [16]byte
	a, err := New(key)
	is.NoError(err)
	b, err := New(key)
	is.NoError(err)

	const n = 5
	for i := 0; i < n; i++ {
		b.Uint64()
	}
	is.NoError(a.Advance(big.NewInt(n), false))
	is.Equal(a.State(), b.State())
}
