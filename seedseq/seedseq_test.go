// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package seedseq

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sixafter/prbg/entropy"
)

// TestPurity verifies property 8 of spec §8: identical (entropy, spawn_key,
// pool_size) yields identical GenerateState output for all k.
func TestPurity(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a, err := New(WithEntropy([]uint32{1, 2, 3}))
	is.NoError(err)
	b, err := New(WithEntropy([]uint32{1, 2, 3}))
	is.NoError(err)

	is.Equal(a.GenerateState32(16), b.GenerateState32(16))
	is.Equal(a.GenerateState64(8), b.GenerateState64(8))
}

// TestDistinctEntropyDiverges is a sanity check that different entropy
// produces different streams (not a formal independence proof).
func TestDistinctEntropyDiverges(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a, err := New(WithEntropy([]uint32{1}))
	is.NoError(err)
	b, err := New(WithEntropy([]uint32{2}))
	is.NoError(err)

	is.NotEqual(a.GenerateState32(8), b.GenerateState32(8))
}

// TestSpawnKeysDiverge verifies that children spawned from a common
// parent take distinct spawn_key paths and thus produce distinct streams.
func TestSpawnKeysDiverge(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	parent, err := New(WithEntropy([]uint32{42}))
	is.NoError(err)

	children, err := parent.Spawn(4)
	is.NoError(err)
	is.Len(children, 4)
	is.EqualValues(4, parent.NChildrenSpawned())

	seen := make(map[string]bool)
	for _, c := range children {
		state := c.GenerateState32(4)
		key := ""
		for _, w := range state {
			key += string(rune(w % 251))
		}
		is.False(seen[key], "collision across spawned children")
		seen[key] = true
	}

	more, err := parent.Spawn(2)
	is.NoError(err)
	is.EqualValues([]uint32{4}, more[0].SpawnKey())
	is.EqualValues([]uint32{5}, more[1].SpawnKey())
}

// TestEntropyIntDecomposition checks little-endian word decomposition of
// an oversized integer entropy input.
func TestEntropyIntDecomposition(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	v := new(big.Int).Lsh(big.NewInt(1), 40) // exceeds one 32-bit word
	ss, err := New(WithEntropyInt(v))
	is.NoError(err)
	is.NotNil(ss)

	want, err := New(WithEntropy([]uint32{0, 1 << 8})) // 2^40 = [0, 2^8] little-endian
	is.NoError(err)
	is.Equal(want.GenerateState32(4), ss.GenerateState32(4))
}

// TestNegativeEntropyRejected verifies spec §4.1's "negative integers in
// entropy -> invalid-argument".
func TestNegativeEntropyRejected(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	_, err := New(WithEntropyInt(big.NewInt(-1)))
	is.ErrorIs(err, ErrNegativeEntropy)
}

// TestEmptyEntropyRejected verifies "Empty seed arrays are rejected".
func TestEmptyEntropyRejected(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	_, err := New(WithEntropy(nil))
	is.ErrorIs(err, ErrEmptySeedArray)
}

// TestInvalidPoolSizeRejected verifies pool_size must be positive.
func TestInvalidPoolSizeRejected(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	_, err := New(WithEntropy([]uint32{1}), WithPoolSize(0))
	is.ErrorIs(err, ErrInvalidPoolSize)
}

// TestOSEntropyDefault verifies construction succeeds when no entropy is
// supplied, drawing from the OS via package entropy.
func TestOSEntropyDefault(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	ss, err := New()
	is.NoError(err)
	is.Len(ss.GenerateState32(4), 4)
}

// TestWithEntropySourceOverride verifies WithEntropySource draws words
// from the supplied reader instead of the default pool.
func TestWithEntropySourceOverride(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := bytes.NewReader([]byte{
		1, 0, 0, 0,
		2, 0, 0, 0,
		3, 0, 0, 0,
		4, 0, 0, 0,
	})
	ss, err := New(WithEntropySource(r))
	is.NoError(err)

	want, err := New(WithEntropy([]uint32{1, 2, 3, 4}))
	is.NoError(err)
	is.Equal(want.GenerateState32(8), ss.GenerateState32(8))
}

// TestWithEntropySourceNilRejected verifies a nil reader surfaces
// entropy.ErrNilReader rather than silently falling back to the OS pool.
func TestWithEntropySourceNilRejected(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	_, err := New(WithEntropySource(nil))
	is.ErrorIs(err, entropy.ErrNilReader)
}
