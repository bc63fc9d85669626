// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prbg

import "math"

// RawFill returns a length-n sequence of raw 64-bit words via NextRaw. The
// words are always 64 bits wide, not the generator's native width: for a
// 32-bit-native core each word is the core's Uint64, which packs two
// native draws.
func RawFill(g *Generator, n int) []uint64 {
	return g.NextRaw(n, true)
}

// DoubleFromUint64 implements the "double uniform from u64" draw of spec
// §4.4: the top 53 bits of x, scaled into [0,1).
func DoubleFromUint64(x uint64) float64 {
	return float64(x>>11) * (1.0 / (1 << 53))
}

// DoubleFromUint32Pair implements the "double uniform from two u32
// words" draw of spec §4.4, for families without a native 64-bit output.
func DoubleFromUint32Pair(a, b uint32) float64 {
	return (float64(a>>5)*(1<<26) + float64(b>>6)) * (1.0 / (1 << 53))
}

// DoubleFromDSFMTWord reinterprets a raw dSFMT buffer word as an
// IEEE-754 double in [1,2) and subtracts 1.0, per spec §4.4.
func DoubleFromDSFMTWord(bits uint64) float64 {
	return math.Float64frombits(bits) - 1.0
}

// Float32FromUint32 implements the "float32 uniform from u32" draw of
// spec §4.4.
func Float32FromUint32(x uint32) float32 {
	return float32(x>>9) * (1.0 / (1 << 23))
}

// Float32PairFromUint64 emits two float32 draws from the low and high
// halves of a single u64 word, per spec §4.4.
func Float32PairFromUint64(x uint64) (lo, hi float32) {
	lo = Float32FromUint32(uint32(x))
	hi = Float32FromUint32(uint32(x >> 32))
	return lo, hi
}

// StandardNormal draws one standard-normal variate using the polar
// (Marsaglia) method of spec §4.4: repeatedly sample (u1,u2) uniform in
// [-1,1] until r² = u1²+u2² lands in (0,1), then scale by
// f = sqrt(-2·ln(r²)/r²).
//
// next must return a uniform double in [0,1); callers typically pass
// g.NextDouble.
func StandardNormal(next func() float64) float64 {
	for {
		u1 := 2*next() - 1
		u2 := 2*next() - 1
		r2 := u1*u1 + u2*u2
		if r2 > 0 && r2 < 1 {
			f := math.Sqrt(-2 * math.Log(r2) / r2)
			return u2 * f
		}
	}
}

// StandardNormalPair draws both variates the polar method produces from
// a single accepted (u1,u2) sample, avoiding discarding the second value
// the way a single-result StandardNormal call would.
func StandardNormalPair(next func() float64) (a, b float64) {
	for {
		u1 := 2*next() - 1
		u2 := 2*next() - 1
		r2 := u1*u1 + u2*u2
		if r2 > 0 && r2 < 1 {
			f := math.Sqrt(-2 * math.Log(r2) / r2)
			return u2 * f, u1 * f
		}
	}
}
