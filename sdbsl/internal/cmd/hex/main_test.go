// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/convert"
	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/flashimg"
)

const firmware = "@C400\n" +
	"31 40 00 04 3F 40 5A 80\n" +
	"@E000\n" +
	"FF FF 12\n" +
	"@FFFE\n" +
	"00 C4\n" +
	"q\n"

func image(t *testing.T) []byte {
	t.Helper()
	res, err := convert.Convert(strings.NewReader(firmware), 0xC400)
	require.NoError(t, err)
	return res.Image.Bytes()
}

func TestToMemory(t *testing.T) {
	mem, err := toMemory(image(t), 0xC400, false)
	require.NoError(t, err)
	segs := mem.GetDataSegments()
	require.Len(t, segs, 3)
	assert.Equal(t, uint32(0xC400), segs[0].Address)
	assert.Equal(t, []byte{0x31, 0x40, 0x00, 0x04, 0x3F, 0x40, 0x5A, 0x80}, segs[0].Data)
	assert.Equal(t, uint32(0xE002), segs[1].Address)
	assert.Equal(t, []byte{0x12}, segs[1].Data)
	assert.Equal(t, uint32(0xFFFE), segs[2].Address)
	assert.Equal(t, []byte{0x00, 0xC4}, segs[2].Data)

	mem, err = toMemory(image(t), 0xC400, true)
	require.NoError(t, err)
	segs = mem.GetDataSegments()
	require.Len(t, segs, 1)
	assert.Len(t, segs[0].Data, 0x3C00)
}

func TestToMemoryRoundTrip(t *testing.T) {
	data := image(t)
	for _, keep := range []bool{false, true} {
		mem, err := toMemory(data, 0xC400, keep)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, mem.DumpIntelHex(&buf, 16))

		res, err := convert.Convert(&buf, 0xC400)
		require.NoError(t, err)
		assert.Equal(t, data, res.Image.Bytes())
	}
}

func TestToMemoryCorrupted(t *testing.T) {
	data := bytes.Clone(image(t))
	data[len(data)-2] ^= 0x80
	_, err := toMemory(data, 0xC400, false)
	assert.ErrorIs(t, err, flashimg.ErrChecksum)

	_, err = toMemory(image(t), 0xC000, false)
	assert.ErrorIs(t, err, flashimg.ErrLength)
}
