// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prbg

import (
	"math/big"

	"github.com/sixafter/prbg/core"
)

// Generator is the uniform adapter over any algorithm core: it serves
// 32-bit, 64-bit, and double draws regardless of the wrapped core's
// native output width, and exposes jump-ahead, advance, and state
// serialization when the core supports them. Optional capabilities are
// type-asserted once at construction and cached, per core's own doc
// comment — Generator never re-probes a core on the hot path.
type Generator struct {
	src core.Source

	asUint32   core.Uint32Source
	asDouble   core.DoubleSource
	asJumper   core.Jumper
	asAdvancer core.Advancer
	asStater   core.Stater
	asSeedable core.Seedable

	// hasUint32/uinteger implement the 32-bit carry: a core without a
	// native Uint32 splits its next Uint64 into two halves, serving the
	// low half immediately and banking the high half here so no entropy
	// is discarded or duplicated across NextUint32 calls.
	hasUint32 bool
	uinteger  uint32

	ffi *FFI
}

// New wraps src in a Generator, probing it for the optional
// core capability interfaces exactly once.
func New(src core.Source) *Generator {
	g := &Generator{src: src}
	g.asUint32, _ = src.(core.Uint32Source)
	g.asDouble, _ = src.(core.DoubleSource)
	g.asJumper, _ = src.(core.Jumper)
	g.asAdvancer, _ = src.(core.Advancer)
	g.asStater, _ = src.(core.Stater)
	g.asSeedable, _ = src.(core.Seedable)
	return g
}

// NextUint64 returns the next native 64-bit draw.
func (g *Generator) NextUint64() uint64 {
	return g.src.Uint64()
}

// NextUint32 returns the next 32-bit draw, using the core's native
// Uint32Source when available, or the carry otherwise. Per spec §4.3/§8
// property 4, a fresh Uint64 draw serves its low half first and banks the
// high half: two NextUint32 calls following one Uint64 draw equal that
// draw's two halves in low-then-high order.
func (g *Generator) NextUint32() uint32 {
	if g.asUint32 != nil {
		return g.asUint32.Uint32()
	}
	if g.hasUint32 {
		g.hasUint32 = false
		return g.uinteger
	}
	full := g.src.Uint64()
	g.uinteger = uint32(full >> 32)
	g.hasUint32 = true
	return uint32(full)
}

// NextDouble returns the next draw in [0,1), using the core's native
// DoubleSource (dSFMT) when available, or the standard 53-bit-mantissa
// construction from a 64-bit draw otherwise.
func (g *Generator) NextDouble() float64 {
	if g.asDouble != nil {
		return g.asDouble.NextDouble()
	}
	return float64(g.NextUint64()>>11) / (1 << 53)
}

// NextRaw draws n raw 64-bit words. When output is false the words are
// still consumed from the core (advancing its state) but are not
// collected, matching spec §4.3's "next_raw(n, output)" contract used to
// skip ahead without allocating.
func (g *Generator) NextRaw(n int, output bool) []uint64 {
	if !output {
		for i := 0; i < n; i++ {
			g.src.Uint64()
		}
		return nil
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = g.src.Uint64()
	}
	return out
}

// ResetCarry discards any banked 32-bit half, forcing the next
// NextUint32 call to draw fresh from the core. Used after Jumped/Advance
// /SetState, whose semantics are defined over whole native words, not a
// generator mid-carry.
func (g *Generator) ResetCarry() {
	g.hasUint32 = false
	g.uinteger = 0
}

// Jumped advances the wrapped core by iter applications of its canonical
// jump distance. iter is accepted as a signed int64 at this boundary
// (matching the library-wide "arbitrarily large non-negative integer"
// seed/iter convention) and validated before the core ever sees it.
func (g *Generator) Jumped(iter int64) error {
	if g.asJumper == nil {
		return ErrUnsupportedOperation
	}
	if iter < 0 {
		return ErrNegativeJumpIter
	}
	g.ResetCarry()
	return g.asJumper.Jumped(uint64(iter))
}

// Advance implements the counter-based families' advance(n, counterOnly)
// contract. counterOnly is always passed explicitly; Advance never returns
// a DeprecationNotice (callers wanting the legacy single-argument form pass
// counterOnly=true themselves). Unlike Jumped, n may be
// negative: spec §8 scenario S3 exercises PCG64's advance/rewind symmetry
// with a literal negative delta, and every Advancer in this module reduces
// n through Euclidean (always-non-negative-remainder) division or modular
// reduction, so a negative n is equivalent to stepping backward rather
// than an invalid argument.
func (g *Generator) Advance(n *big.Int, counterOnly bool) error {
	if g.asAdvancer == nil {
		return ErrUnsupportedOperation
	}
	g.ResetCarry()
	return g.asAdvancer.Advance(n, counterOnly)
}

// State returns the wrapped core's tagged state record, per spec §6's
// {bit_generator, state, has_uint32, uinteger} shape.
func (g *Generator) State() (map[string]any, error) {
	if g.asStater == nil {
		return nil, ErrUnsupportedOperation
	}
	return map[string]any{
		"bit_generator": g.asStater.BitGeneratorTag(),
		"state":         g.asStater.State(),
		"has_uint32":    g.hasUint32,
		"uinteger":      g.uinteger,
	}, nil
}

// SetState restores the wrapped core's state from a tagged record
// previously produced by State, including the adapter's own carry
// fields.
func (g *Generator) SetState(record map[string]any) error {
	if g.asStater == nil {
		return ErrUnsupportedOperation
	}
	if err := ValidateStateRecord(record, g.asStater.BitGeneratorTag()); err != nil {
		return err
	}
	inner := record["state"].(map[string]any)
	hasUint32 := record["has_uint32"].(bool)
	uinteger := record["uinteger"].(uint32)

	if err := g.asStater.SetState(inner); err != nil {
		return err
	}
	g.hasUint32 = hasUint32
	g.uinteger = uinteger
	return nil
}

// SeedFromWords reseeds the wrapped core from a SeedSequence-style stream
// of 32-bit words, for cores that implement core.Seedable.
func (g *Generator) SeedFromWords(words []uint32) error {
	if g.asSeedable == nil {
		return ErrUnsupportedOperation
	}
	g.ResetCarry()
	return g.asSeedable.SeedFromWords(words)
}
