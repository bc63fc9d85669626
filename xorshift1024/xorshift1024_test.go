// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package xorshift1024

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(12345)
	b := New(12345)
	for i := 0; i < 2000; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(99)
	for i := 0; i < 31; i++ {
		a.Uint64()
	}
	state := a.State()

	b := New(0)
	is.NoError(b.SetState(state))
	for i := 0; i < 100; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

func TestJumpDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(3)
	b := New(3)
	is.NoError(a.Jumped(1))
	is.NoError(b.Jumped(1))
	is.Equal(a.Uint64(), b.Uint64())
}

func TestSetStateRejectsMalformed(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New(1)
	is.Error(g.SetState(map[string]any{"s": []uint64{1, 2}, "p": 0}))
	is.Error(g.SetState(map[string]any{"s": make([]uint64, words), "p": 16}))
}
