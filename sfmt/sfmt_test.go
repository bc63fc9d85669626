// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package sfmt

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
		is.Equal(a.Uint32(), b.Uint32())
	}
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(99)
	for i := 0; i < 17; i++ {
		a.Uint32()
	}
	state := a.State()

	b := New(0)
	is.NoError(b.SetState(state))
	for i := 0; i < 500; i++ {
		is.Equal(a.Uint32(), b.Uint32())
	}
}

func TestJumpDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(3)
	b := New(3)
	is.NoError(a.Jumped(1))
	is.NoError(b.Jumped(1))
	is.Equal(a.Uint32(), b.Uint32())
}
