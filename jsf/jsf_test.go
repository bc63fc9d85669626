// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package jsf

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

func TestDifferentSeedsDiverge(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(1)
	b := New(2)
	is.NotEqual(a.Uint64(), b.Uint64())
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(99)
	for i := 0; i < 17; i++ {
		a.Uint64()
	}
	state := a.State()

	b := New(0)
	is.NoError(b.SetState(state))
	for i := 0; i < 100; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

func TestSetStateRejectsMalformed(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New(1)
	is.Error(g.SetState(map[string]any{"a": uint64(1)}))
}
