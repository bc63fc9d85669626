// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prbg

import (
	"errors"
	"fmt"
)

// Sentinel errors, checked with errors.Is, following a package-level
// error-value convention. The family packages report invalid seeds and
// arguments with their own sentinels (core.Err*, seedseq.Err*,
// chacha.ErrInvalidRounds), which are distinct values: errors.Is does not
// match them against the seed/argument sentinels below.
var (
	// ErrNegativeSeed names the negative-seed error kind. Family
	// constructors report it as core.ErrNegativeSeed, and seedseq as
	// seedseq.ErrNegativeEntropy; no function returns this value.
	ErrNegativeSeed = errors.New("prbg: seed must be non-negative")

	// ErrSeedTooWide names the error kind for a seed integer wider than
	// the family's documented maximum. Family constructors report it as
	// core.ErrSeedTooWide; no function returns this value.
	ErrSeedTooWide = errors.New("prbg: seed exceeds maximum width for this generator")

	// ErrEmptySeedArray names the empty seed/entropy array error kind.
	// mt19937 reports it as core.ErrEmptySeedArray and seedseq as
	// seedseq.ErrEmptySeedArray; no function returns this value.
	ErrEmptySeedArray = errors.New("prbg: seed array must not be empty")

	// ErrSeedAndKeyConflict names the error kind for a seed and a key
	// supplied together. No constructor in this module takes both, so no
	// function returns it.
	ErrSeedAndKeyConflict = errors.New("prbg: seed and key are mutually exclusive")

	// ErrFloatSeed names the non-integral seed error kind. Seeds are
	// integer-typed throughout this module, so no function returns it.
	ErrFloatSeed = errors.New("prbg: seed must be an integer, not a floating-point value")

	// ErrInvalidPoolSize names the zero pool_size error kind. seedseq.New
	// reports it as seedseq.ErrInvalidPoolSize; no function returns this
	// value.
	ErrInvalidPoolSize = errors.New("prbg: pool_size must be positive")

	// ErrInvalidRounds names the odd or non-positive ChaCha round count
	// error kind. chacha.New reports it as chacha.ErrInvalidRounds; no
	// function returns this value.
	ErrInvalidRounds = errors.New("prbg: rounds must be a positive even integer")

	// ErrNegativeJumpIter is returned by Jumped when iter < 0 (exposed as
	// a signed argument at the Generator boundary; cores themselves take
	// an unsigned iter and rely on this check happening first).
	ErrNegativeJumpIter = errors.New("prbg: jumped() iter must be non-negative")

	// ErrUnknownStateTag is returned by ValidateStateRecord (and so by
	// Generator.SetState) when a record's bit_generator tag is not
	// recognized.
	ErrUnknownStateTag = errors.New("prbg: unknown bit_generator state tag")

	// ErrMalformedState is returned by ValidateStateRecord when a state
	// record is missing a required field or a field has the wrong
	// shape/dtype. A core's own SetState reports a malformed inner state
	// as core.ErrMalformedState.
	ErrMalformedState = errors.New("prbg: state record has the wrong shape for this generator")

	// ErrUnsupportedOperation is returned by Jumped/Advance on a family
	// that does not implement core.Jumper/core.Advancer. Test suites can
	// detect this via errors.Is and skip, per spec §7.
	ErrUnsupportedOperation = errors.New("prbg: operation not supported by this generator")

	// ErrRDRANDUnavailable is returned when constructing an RDRAND source
	// on a CPU that lacks the instruction.
	ErrRDRANDUnavailable = errors.New("prbg: RDRAND is not available on this CPU")

	// ErrAESNIUnavailable names the error kind for requesting AES-NI on a
	// CPU without it. aescounter.UseAESNI is a plain variable with no
	// validating setter, so no function returns it.
	ErrAESNIUnavailable = errors.New("prbg: AES-NI is not available on this CPU")
)

// ArgumentError wraps one of the invalid-argument sentinels above with the
// offending field name, so callers get both errors.Is matching and a
// useful message.
type ArgumentError struct {
	Field string
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("prbg: %s: %v", e.Field, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// DeprecationNotice is returned alongside a successful legacy call, never
// as a hard error; callers that care can type-assert for it. In this module
// xoshiro256.NewStarStarLegacy returns one alongside its generator;
// Generator.Advance does not return one.
type DeprecationNotice struct {
	Message string
}

func (e *DeprecationNotice) Error() string { return "prbg: deprecated: " + e.Message }
