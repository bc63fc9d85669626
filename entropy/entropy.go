// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package entropy supplies the OS-entropy source SeedSequence draws from
// when constructed with no explicit entropy, and the fallback source
// RDRAND uses when the CPU instruction is unavailable. It wraps
// github.com/sixafter/aes-ctr-drbg: a NIST SP 800-90A AES-CTR-DRBG
// reseeded from crypto/rand, pooled so repeated construction of
// generators under concurrent use amortizes the reseed cost.
package entropy

import (
	"encoding/binary"
	"errors"
	"io"

	ctrdrbg "github.com/sixafter/aes-ctr-drbg"
	chachaprng "github.com/sixafter/prng-chacha"
)

// ErrNilReader is returned when a caller supplies a nil io.Reader as an
// entropy source, e.g. via seedseq.WithEntropySource.
var ErrNilReader = errors.New("entropy: reader must not be nil")

// Reader is the package-level pooled AES-CTR-DRBG entropy source.
var Reader io.Reader = ctrdrbg.Reader

// ChaChaReader is an alternate pooled entropy source backed by ChaCha20,
// offered for callers that construct many generators and want to avoid
// contending the AES-CTR-DRBG pool (e.g. a driver that seeds a large
// spawn tree of SeedSequences up front).
var ChaChaReader io.Reader = chachaprng.Reader

// Uint32Words reads n little-endian uint32 words from r.
func Uint32Words(r io.Reader, n int) ([]uint32, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	words := make([]uint32, n)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
	}
	return words, nil
}
