// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package threefry

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New([4]uint64{1, 2, 3, 4})
	b := New([4]uint64{1, 2, 3, 4})
	for i := 0; i < 2000; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

func TestDifferentKeysDiverge(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New([4]uint64{1, 2, 3, 4})
	b := New([4]uint64{1, 2, 3, 5})
	is.NotEqual(a.Uint64(), b.Uint64())
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New([4]uint64{5, 6, 7, 8})
	for i := 0; i < 11; i++ {
		a.Uint64()
	}
	state := a.State()

	b := New([4]uint64{})
	is.NoError(b.SetState(state))
	for i := 0; i < 100; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

func TestAdvanceByWordsMatchesManualDraws(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New([4]uint64{3, 4, 5, 6})
	b := New([4]uint64{3, 4, 5, 6})

	const n = 9
	for i := 0; i < n; i++ {
		b.Uint64()
	}
	is.NoError(a.Advance(big.NewInt(n), false))
	is.Equal(a.State(), b.State())
}
