// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package core

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecomposeSeedLE32RejectsNegative(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	_, err := DecomposeSeedLE32(big.NewInt(-1), 32)
	is.ErrorIs(err, ErrNegativeSeed)
}

func TestDecomposeSeedLE32RejectsOverWide(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	tooWide := new(big.Int).Lsh(big.NewInt(1), 32)
	_, err := DecomposeSeedLE32(tooWide, 32)
	is.ErrorIs(err, ErrSeedTooWide)
}

func TestDecomposeSeedLE32LittleEndianWords(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	v := new(big.Int).SetUint64(0x00000002_00000001)
	words, err := DecomposeSeedLE32(v, 64)
	is.NoError(err)
	is.Equal([]uint32{1, 2}, words)
}

func TestDecomposeSeedLE32PadsShortValues(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	words, err := DecomposeSeedLE32(big.NewInt(7), 128)
	is.NoError(err)
	is.Len(words, 4)
	is.Equal(uint32(7), words[0])
	for _, w := range words[1:] {
		is.Equal(uint32(0), w)
	}
}

func TestDecomposeSeedLE32AcceptsBoundaryValue(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	maxVal := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 32), big.NewInt(1))
	words, err := DecomposeSeedLE32(maxVal, 32)
	is.NoError(err)
	is.Equal([]uint32{0xFFFFFFFF}, words)
}
