// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dsfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(12345)
	b := New(12345)
	for i := 0; i < 500; i++ {
		is.Equal(a.NextDouble(), b.NextDouble())
	}
}

func TestDoublesAreUnitInterval(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New(1)
	for i := 0; i < 1000; i++ {
		d := g.NextDouble()
		is.GreaterOrEqual(d, 0.0)
		is.Less(d, 1.0)
	}
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(99)
	for i := 0; i < 17; i++ {
		a.NextDouble()
	}
	state := a.State()

	b := New(0)
	is.NoError(b.SetState(state))
	for i := 0; i < 400; i++ {
		is.Equal(a.NextDouble(), b.NextDouble())
	}
}

func TestJumpDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(3)
	b := New(3)
	is.NoError(a.Jumped(1))
	is.NoError(b.Jumped(1))
	is.Equal(a.NextDouble(), b.NextDouble())
}
