// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package xoshiro256

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	for _, v := range []Variant{StarStar, Plus, PlusPlus} {
		a := NewVariant(12345, v)
		b := NewVariant(12345, v)
		for i := 0; i < 1000; i++ {
			is.Equal(a.Uint64(), b.Uint64())
		}
	}
}

func TestVariantsDiverge(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	ss := NewVariant(1, StarStar)
	pp := NewVariant(1, Plus)
	is.NotEqual(ss.Uint64(), pp.Uint64())
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(7)
	for i := 0; i < 50; i++ {
		a.Uint64()
	}
	state := a.State()

	b := New(0)
	is.NoError(b.SetState(state))
	for i := 0; i < 100; i++ {
		is.Equal(a.Uint64(), b.Uint64())
	}
}

func TestJumpChangesState(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(3)
	b := New(3)
	before := a.State()
	is.NoError(a.Jumped(1))
	is.NoError(b.Jumped(1))
	is.NotEqual(before, a.State())
	is.Equal(a.Uint64(), b.Uint64())
}

func TestLongJumpDiffersFromJump(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(5)
	b := New(5)
	is.NoError(a.Jumped(1))
	is.NoError(b.LongJumped(1))
	is.NotEqual(a.State(), b.State())
}

func TestSetStateRejectsMalformed(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New(1)
	is.Error(g.SetState(map[string]any{"s": []uint64{1, 2, 3}}))
}

// TestLegacyStarStarAliasIdentity verifies spec §8 scenario S6: the legacy
// constructor's class identity is Xoshiro256, and construction reports a
// deprecation notice rather than failing.
func TestLegacyStarStarAliasIdentity(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g, notice := NewStarStarLegacy(99)
	is.NotNil(notice)
	is.NotEmpty(notice.Error())
	is.IsType(&Xoshiro256{}, g)

	want := NewVariant(99, StarStar)
	is.Equal(want.Uint64(), g.Uint64())
}
