// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prbg

// FFI is the foreign-interface descriptor triple of spec §6: a stable
// opaque state handle plus the three draw functions bound to it. Go has
// no CFFI/ctypes boundary to cross, so StatePtr is simply the owning
// Generator itself, typed as `any` to mirror the opaque-pointer contract
// callers outside this module would see.
type FFI struct {
	StatePtr   any
	NextUint64 func() uint64
	NextUint32 func() uint32
	NextDouble func() float64
}

// FFI returns the Generator's foreign-interface descriptor, memoizing it
// on first access so repeated calls return the identical object, per
// spec §4.3/§6's "the descriptor is memoized and returned by reference"
// contract.
func (g *Generator) FFI() *FFI {
	if g.ffi != nil {
		return g.ffi
	}
	g.ffi = &FFI{
		StatePtr:   g,
		NextUint64: g.NextUint64,
		NextUint32: g.NextUint32,
		NextDouble: g.NextDouble,
	}
	return g.ffi
}

// Benchmark runs a tight draw loop of n words for timing purposes,
// returning the XOR-folded accumulation so the compiler cannot elide the
// loop. dtype must be "uint64" or "double"; "int32" is rejected per
// spec §4.3, since the library's own microbenchmarks only ever time the
// two native word widths.
func (g *Generator) Benchmark(n int, dtype string) (uint64, error) {
	switch dtype {
	case "uint64":
		var acc uint64
		for i := 0; i < n; i++ {
			acc ^= g.NextUint64()
		}
		return acc, nil
	case "double":
		var acc float64
		for i := 0; i < n; i++ {
			acc += g.NextDouble()
		}
		return uint64(acc), nil
	case "int32":
		return 0, &ArgumentError{Field: "dtype", Err: ErrUnsupportedOperation}
	default:
		return 0, &ArgumentError{Field: "dtype", Err: ErrUnsupportedOperation}
	}
}
