// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flashimg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalized(t *testing.T, base uint16) []byte {
	t.Helper()
	m := newValid(t, base)
	require.NoError(t, m.Set(1, 0x40))
	require.NoError(t, m.Finalize())
	return bytes.Clone(m.Bytes())
}

func TestInferBase(t *testing.T) {
	base, err := InferBase(0x3C00)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xC400), base)

	for _, n := range []int{0, 1, 0x10000, 0x20000} {
		_, err = InferBase(n)
		assert.ErrorIs(t, err, ErrLength, "n=%d", n)
	}
}

func TestVerify(t *testing.T) {
	data := finalized(t, 0xC400)
	assert.NoError(t, Verify(data, 0xC400))

	assert.ErrorIs(t, Verify(data, 0), ErrZeroBase)
	assert.ErrorIs(t, Verify(data, 0xC000), ErrLength)
	assert.ErrorIs(t, Verify(data[1:], 0xC400), ErrLength)

	bad := bytes.Clone(data)
	bad[100] ^= 0x01
	assert.ErrorIs(t, Verify(bad, 0xC400), ErrChecksum)

	bad = bytes.Clone(data)
	bad[len(bad)-1] = 0xC5
	var rve *ResetVectorError
	require.ErrorAs(t, Verify(bad, 0xC400), &rve)
	assert.Equal(t, uint16(0xC500), rve.Vector)

	bad = bytes.Clone(data)
	bad[0], bad[1] = Erased, Erased
	bad[len(bad)-2] = XOR(bad[:len(bad)-2])
	var ee *EntryError
	assert.ErrorAs(t, Verify(bad, 0xC400), &ee)
}

func TestXOR(t *testing.T) {
	assert.Equal(t, byte(0), XOR(nil))
	assert.Equal(t, byte(0x3F), XOR([]byte{0x3F}))
	assert.Equal(t, byte(0), XOR([]byte{0xFF, 0xFF}))
	assert.Equal(t, byte(0x0F), XOR([]byte{0xF0, 0xFF}))
}
