// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUint32WordsLittleEndian verifies word decomposition order.
func TestUint32WordsLittleEndian(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := bytes.NewReader([]byte{0x01, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff})
	words, err := Uint32Words(r, 2)
	is.NoError(err)
	is.Equal([]uint32{1, 0xffffffff}, words)
}

// TestUint32WordsRejectsNilReader verifies ErrNilReader is returned rather
// than panicking on a nil io.Reader.
func TestUint32WordsRejectsNilReader(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	_, err := Uint32Words(nil, 4)
	is.ErrorIs(err, ErrNilReader)
}

// TestUint32WordsShortReadErrors verifies a truncated reader surfaces an
// error instead of returning a partially-filled slice.
func TestUint32WordsShortReadErrors(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	r := bytes.NewReader([]byte{0x01, 0x02})
	_, err := Uint32Words(r, 1)
	is.Error(err)
}

// TestPooledReadersProduceWords is a smoke test that the package-level
// pooled entropy sources are usable io.Readers.
func TestPooledReadersProduceWords(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	words, err := Uint32Words(Reader, 4)
	is.NoError(err)
	is.Len(words, 4)

	chachaWords, err := Uint32Words(ChaChaReader, 4)
	is.NoError(err)
	is.Len(chachaWords, 4)
}
