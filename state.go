// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prbg

// KnownBitGeneratorTags lists every bit_generator tag a Stater
// implementation in this module can report, per spec §6's state record
// format. Used by ValidateStateRecord to reject a record for a family
// this build doesn't know about, rather than passing an unrecognized
// tag down into a core's own SetState.
var KnownBitGeneratorTags = map[string]bool{
	"MT19937":      true,
	"MT19937_64":   true,
	"dSFMT":        true,
	"SFMT":         true,
	"Xoroshiro128": true,
	"Xoshiro256":   true,
	"Xoshiro512":   true,
	"Xorshift1024": true,
	"PCG32":        true,
	"PCG64":        true,
	"JSF":          true,
	"Philox":       true,
	"ThreeFry":     true,
	"AESCounter":   true,
	"ChaCha":       true,
	"SPECK128":     true,
	"HC128":        true,
	"RDRAND":       true,
}

// ValidateStateRecord checks that record has the {bit_generator, state,
// has_uint32, uinteger} shape spec §6 defines, and that its
// bit_generator tag both names a known family and matches want (the
// tag of the core actually being restored into). This catches the
// common cross-family mistake of feeding one generator's serialized
// state to another's SetState before any field-level unmarshaling
// happens.
func ValidateStateRecord(record map[string]any, want string) error {
	tag, ok := record["bit_generator"].(string)
	if !ok || !KnownBitGeneratorTags[tag] {
		return ErrUnknownStateTag
	}
	if tag != want {
		return ErrUnknownStateTag
	}
	if _, ok := record["state"].(map[string]any); !ok {
		return ErrMalformedState
	}
	if _, ok := record["has_uint32"].(bool); !ok {
		return ErrMalformedState
	}
	if _, ok := record["uinteger"].(uint32); !ok {
		return ErrMalformedState
	}
	return nil
}
