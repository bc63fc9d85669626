// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package seedseq mixes arbitrary user entropy into a reproducible stream
// of 32-bit words used to initialize any generator's state, and supports
// spawning independent child streams from a parent. It is the Go analogue
// of NumPy's SeedSequence and uses the same hashmix/mix constants, but not
// the same schedule: entropy is not zero-padded before the spawn key, each
// entropy word beyond pool_size folds into a single pool slot, the
// all-pairs pool mix runs mixRounds times, and generate_state XORs the
// word counter into each pool word and hashes with the multA multiplier.
// Its generate_state output therefore does not match NumPy's for the same
// (entropy, spawn_key, pool_size).
package seedseq

import (
	"errors"
	"io"
	"math/big"

	"github.com/sixafter/prbg/entropy"
)

// Sentinel errors, checked with errors.Is.
var (
	ErrNegativeEntropy  = errors.New("seedseq: entropy values must be non-negative")
	ErrInvalidPoolSize  = errors.New("seedseq: pool_size must be positive")
	ErrEntropyReadError = errors.New("seedseq: failed to read OS entropy")
	ErrEmptySeedArray   = errors.New("seedseq: entropy array must not be empty")
)

const (
	// defaultPoolSize is SeedSequence's default pool_size in 32-bit words.
	defaultPoolSize = 4

	// xshift mixing constants, following the reference SeedSequence's
	// hashmix/mix_entropy constants (a DJBX33A-style multiplier plus a
	// fixed XOR-rotate round count).
	initA       uint32 = 0x43b0d7e5
	multA       uint32 = 0x931e8875
	initB       uint32 = 0x8b51f9dd
	multB       uint32 = 0x58f38ded
	mixMultL    uint32 = 0xca01f9dd
	mixMultR    uint32 = 0x4973f715
	xshift             = 16
	mixRounds          = 2
)

func rotl32(x uint32, k uint) uint32 { return (x << k) | (x >> (32 - k)) }

func hashmix(value uint32, hashConst *uint32) uint32 {
	value ^= *hashConst
	*hashConst *= multA
	value *= *hashConst
	value ^= value >> xshift
	return value
}

func mix(x, y uint32) uint32 {
	result := mixMultL*x - mixMultR*y
	result ^= result >> xshift
	return result
}

// SeedSequence mixes entropy into a deterministic stream of 32-bit words.
// Its entropy, spawn key, pool size and pool are fixed at construction,
// matching spec §3's lifecycle requirement: identical (entropy, spawn_key,
// pool_size) always yields identical generate_state output. The only field
// that changes afterwards is the spawned-children counter, advanced by Spawn.
type SeedSequence struct {
	entropy         []uint32
	spawnKey        []uint32
	poolSize        uint32
	pool            []uint32
	nChildrenSpawned uint32
}

// Option configures a SeedSequence at construction time.
type Option func(*config)

type config struct {
	entropy          []uint32
	entropySet       bool
	negativeEntropy  bool
	spawnKey         []uint32
	poolSize         uint32
	nSpawned         uint32
	entropySource    io.Reader
	entropySourceSet bool
}

// WithEntropy supplies explicit entropy words. Use WithEntropyInt for a
// single non-negative integer, decomposed little-endian. An empty slice
// is rejected by New with ErrEmptySeedArray (spec §4.1: "Empty seed
// arrays are rejected").
func WithEntropy(words []uint32) Option {
	return func(c *config) {
		c.entropy = append([]uint32(nil), words...)
		c.entropySet = true
	}
}

// WithEntropyInt decomposes a single non-negative big integer into
// little-endian 32-bit words. A negative value is rejected by New with
// ErrNegativeEntropy.
func WithEntropyInt(v *big.Int) Option {
	return func(c *config) {
		if v.Sign() < 0 {
			c.negativeEntropy = true
			return
		}
		c.entropy = decomposeLE32(v)
		c.entropySet = true
	}
}

// WithSpawnKey sets the spawn-tree path identifying this sequence as a
// child. Callers normally reach this via Spawn, not directly.
func WithSpawnKey(key []uint32) Option {
	return func(c *config) { c.spawnKey = append([]uint32(nil), key...) }
}

// WithPoolSize overrides the default pool size of 4 32-bit words.
func WithPoolSize(n uint32) Option {
	return func(c *config) { c.poolSize = n }
}

func withNChildrenSpawned(n uint32) Option {
	return func(c *config) { c.nSpawned = n }
}

// WithEntropySource overrides the package entropy.Reader OS-entropy pool
// used when no explicit entropy is supplied. Pass entropy.ChaChaReader to
// draw from the ChaCha20-backed pool instead, e.g. when seeding a large
// spawn tree up front and avoiding contention on the default AES-CTR-DRBG
// pool. A nil reader is rejected by New with entropy.ErrNilReader.
func WithEntropySource(r io.Reader) Option {
	return func(c *config) {
		c.entropySource = r
		c.entropySourceSet = true
	}
}

// decomposeLE32 splits a non-negative big.Int into little-endian u32 words.
func decomposeLE32(v *big.Int) []uint32 {
	if v.Sign() == 0 {
		return []uint32{0}
	}
	mask := big.NewInt(0xFFFFFFFF)
	tmp := new(big.Int).Set(v)
	var words []uint32
	for tmp.Sign() > 0 {
		w := new(big.Int).And(tmp, mask)
		words = append(words, uint32(w.Uint64()))
		tmp.Rsh(tmp, 32)
	}
	return words
}

// New constructs a SeedSequence from the given options. With no
// WithEntropy/WithEntropyInt option, entropy is drawn from the OS via
// package entropy, per spec §4.1.
func New(opts ...Option) (*SeedSequence, error) {
	cfg := config{poolSize: defaultPoolSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.poolSize == 0 {
		return nil, ErrInvalidPoolSize
	}
	if cfg.negativeEntropy {
		return nil, ErrNegativeEntropy
	}
	if cfg.entropySet && len(cfg.entropy) == 0 {
		return nil, ErrEmptySeedArray
	}

	ent := cfg.entropy
	if !cfg.entropySet {
		src := entropy.Reader
		if cfg.entropySourceSet {
			if cfg.entropySource == nil {
				return nil, entropy.ErrNilReader
			}
			src = cfg.entropySource
		}
		words, err := entropy.Uint32Words(src, int(cfg.poolSize))
		if err != nil {
			return nil, ErrEntropyReadError
		}
		ent = words
	}

	ss := &SeedSequence{
		entropy:          ent,
		spawnKey:         append([]uint32(nil), cfg.spawnKey...),
		poolSize:         cfg.poolSize,
		nChildrenSpawned: cfg.nSpawned,
	}
	ss.pool = ss.mixEntropy()
	return ss, nil
}

// mixEntropy builds the fixed-size pool by hashing entropy_words || spawn_key
// through hashmix/mix (see the package doc for how the schedule differs
// from NumPy's mix_entropy).
func (s *SeedSequence) mixEntropy() []uint32 {
	pool := make([]uint32, s.poolSize)

	hashConst := initA
	mixEntropy := append(append([]uint32(nil), s.entropy...), s.spawnKey...)

	for i := range pool {
		if i < len(mixEntropy) {
			pool[i] = hashmix(mixEntropy[i], &hashConst)
		} else {
			pool[i] = hashmix(0, &hashConst)
		}
	}

	for i := uint32(len(pool)); int(i) < len(mixEntropy); i++ {
		pool[i%s.poolSize] = mix(pool[i%s.poolSize], hashmix(mixEntropy[i], &hashConst))
	}

	for round := 0; round < mixRounds; round++ {
		for iSrc := uint32(0); iSrc < s.poolSize; iSrc++ {
			for iDst := uint32(0); iDst < s.poolSize; iDst++ {
				if iSrc != iDst {
					pool[iDst] = mix(pool[iDst], hashmix(pool[iSrc], &hashConst))
				}
			}
		}
	}

	return pool
}

// GenerateState32 produces n 32-bit words by hashing (pool, counter) for
// counter = 0..n-1. It is a pure function of the constructor inputs.
func (s *SeedSequence) GenerateState32(n int) []uint32 {
	out := make([]uint32, n)
	hashConst := initB
	srcCounter := uint32(0)
	for i := range out {
		dataVal := s.pool[srcCounter%s.poolSize]
		dataVal ^= srcCounter
		srcCounter++
		out[i] = hashmix(dataVal, &hashConst)
	}
	return out
}

// GenerateState64 produces n 64-bit words by pairing consecutive 32-bit
// words from GenerateState32, low word first.
func (s *SeedSequence) GenerateState64(n int) []uint64 {
	words32 := s.GenerateState32(n * 2)
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(words32[2*i]) | uint64(words32[2*i+1])<<32
	}
	return out
}

// Spawn returns n child SeedSequences with spawn_key = parent.spawn_key ||
// [k] for k in [n_children_spawned, n_children_spawned+n), and advances
// the parent's counter so a second Spawn call never repeats a path.
func (s *SeedSequence) Spawn(n int) ([]*SeedSequence, error) {
	children := make([]*SeedSequence, n)
	for i := 0; i < n; i++ {
		k := s.nChildrenSpawned + uint32(i)
		childKey := append(append([]uint32(nil), s.spawnKey...), k)
		child, err := New(
			WithEntropy(s.entropy),
			WithSpawnKey(childKey),
			WithPoolSize(s.poolSize),
		)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	s.nChildrenSpawned += uint32(n)
	return children, nil
}

// SpawnKey returns the spawn-tree path identifying this sequence.
func (s *SeedSequence) SpawnKey() []uint32 { return append([]uint32(nil), s.spawnKey...) }

// PoolSize returns the pool size in 32-bit words.
func (s *SeedSequence) PoolSize() uint32 { return s.poolSize }

// NChildrenSpawned returns the number of children spawned so far.
func (s *SeedSequence) NChildrenSpawned() uint32 { return s.nChildrenSpawned }
