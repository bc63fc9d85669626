// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package bigword implements the fixed-width multi-word unsigned
// arithmetic shared by the counter-based cores' advance() and PCG's
// closed-form jump-ahead. Word slices are little-endian (word 0 holds the
// least significant 64 bits), matching the counters described in spec §3
// invariant 2.
//
// Internally this delegates to math/big rather than hand-rolled carry
// chains: the module sizes involved (up to 1024 bits) are small enough
// that math/big's cost is immaterial next to the cores' own block
// ciphers, and it removes an entire class of off-by-one carry bugs from
// arithmetic that is otherwise exercised only at jump/advance call sites,
// not in any hot loop. See DESIGN.md for the tradeoff.
package bigword

import "math/big"

// ToBigInt interprets words as a little-endian unsigned integer.
func ToBigInt(words []uint64) *big.Int {
	n := new(big.Int)
	tmp := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		n.Lsh(n, 64)
		tmp.SetUint64(words[i])
		n.Or(n, tmp)
	}
	return n
}

// FromBigInt writes v into words little-endian, reduced modulo 2^(64*len(words)).
func FromBigInt(v *big.Int, words []uint64) {
	mask := new(big.Int).SetUint64(0xFFFFFFFFFFFFFFFF)
	tmp := new(big.Int).Set(v)
	if tmp.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(64*len(words)))
		tmp.Mod(tmp, mod)
	}
	for i := range words {
		word := new(big.Int).And(tmp, mask)
		words[i] = word.Uint64()
		tmp.Rsh(tmp, 64)
	}
}

// AddCarry adds delta into the little-endian multi-word value in place,
// wrapping modulo 2^(64*len(words)); a negative delta subtracts with the
// same wraparound. This is
// the carry-propagating add required for AES/ChaCha/SPECK/Philox/ThreeFry
// counters.
func AddCarry(words []uint64, delta *big.Int) {
	cur := ToBigInt(words)
	cur.Add(cur, delta)
	FromBigInt(cur, words)
}

// PowMod2 computes base^exp mod 2^bits.
func PowMod2(base *big.Int, exp *big.Int, bits uint) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), bits)
	return new(big.Int).Exp(base, exp, mod)
}

// LCGAdvance computes the composed multiplier and increment for applying
// the linear congruential step state' = mult*state + plus, delta times in
// a row, modulo 2^bits. The result (m, p) satisfies
// state_after_delta_steps = (m*state + p) mod 2^bits, computed in
// O(log delta) via the standard doubling technique for LCG skip (as used
// by the PCG family's pcg_advance_lcg routines): square the step while
// halving delta, accumulating the composed affine transform whenever the
// current bit of delta is set.
func LCGAdvance(mult, plus, delta *big.Int, bits uint) (m, p *big.Int) {
	modMask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))

	accMult := big.NewInt(1)
	accPlus := big.NewInt(0)
	curMult := new(big.Int).And(mult, modMask)
	curPlus := new(big.Int).And(plus, modMask)
	// delta may legitimately exceed 2^bits (spec: "accepts arbitrarily
	// large integers"); reduce it modulo the LCG's period, 2^bits.
	d := new(big.Int).Mod(delta, new(big.Int).Lsh(big.NewInt(1), bits))

	one := big.NewInt(1)
	for d.Sign() > 0 {
		if d.Bit(0) == 1 {
			accMult.Mul(accMult, curMult).And(accMult, modMask)
			accPlus.Mul(accPlus, curMult)
			accPlus.Add(accPlus, curPlus)
			accPlus.And(accPlus, modMask)
		}
		curPlusNext := new(big.Int).Add(curMult, one)
		curPlusNext.Mul(curPlusNext, curPlus)
		curPlusNext.And(curPlusNext, modMask)

		curMult.Mul(curMult, curMult).And(curMult, modMask)
		curPlus = curPlusNext

		d.Rsh(d, 1)
	}
	return accMult, accPlus
}
