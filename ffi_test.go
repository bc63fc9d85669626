// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prbg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sixafter/prbg/mt19937"
)

// TestFFIMemoized verifies spec §4.3/§6: repeated FFI() access returns the
// identical descriptor instance, not a fresh copy.
func TestFFIMemoized(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New(mt19937.NewFromSeed(1))
	first := g.FFI()
	second := g.FFI()
	is.Same(first, second)
}

// TestFFIDescriptorDrivesGenerator verifies the descriptor's function
// pointers are bound to the same underlying generator, not a snapshot.
func TestFFIDescriptorDrivesGenerator(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := New(mt19937.NewFromSeed(2))
	b := New(mt19937.NewFromSeed(2))

	ffi := a.FFI()
	is.Equal(b.NextUint64(), ffi.NextUint64())
	is.Equal(b.NextUint32(), ffi.NextUint32())
	is.Equal(b.NextDouble(), ffi.NextDouble())
}

// TestBenchmarkRejectsInt32 verifies spec §4.3: Benchmark("int32", ...) is
// rejected, unlike "uint64"/"double".
func TestBenchmarkRejectsInt32(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	g := New(mt19937.NewFromSeed(3))
	_, err := g.Benchmark(10, "int32")
	is.Error(err)

	_, err = g.Benchmark(10, "uint64")
	is.NoError(err)
	_, err = g.Benchmark(10, "double")
	is.NoError(err)
}
