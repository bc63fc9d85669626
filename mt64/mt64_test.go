// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mt64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeed(12345)
	b := NewFromSeed(12345)
	for i := 0; i < 2000; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeed(99)
	for i := 0; i < 17; i++ {
		a.Uint64()
	}
	state := a.State()

	b := New()
	is.NoError(b.SetState(state))

	for i := 0; i < 100; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

func TestSeedFromWords64RejectsEmpty(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New()
	is.Error(g.SeedFromWords64(nil))
}

func TestJumpDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := NewFromSeed(3)
	b := NewFromSeed(3)
	is.NoError(a.Jumped(1))
	is.NoError(b.Jumped(1))
	is.Equal(a.Uint64(), b.Uint64())
}
