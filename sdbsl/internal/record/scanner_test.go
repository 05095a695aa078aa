// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, s *Scanner) []Record {
	t.Helper()
	var recs []Record
	for s.Scan() {
		recs = append(recs, s.Record())
	}
	return recs
}

func TestScannerIntelHex(t *testing.T) {
	in := ":020000040000FA\n" +
		":01C400003FFC\n" +
		"\n" +
		":02FFFE0000C43D\n" +
		":00000001FF\n"
	s := NewScanner(strings.NewReader(in), 0xC400)
	recs := scanAll(t, s)
	require.NoError(t, s.Err())
	assert.Equal(t, []Record{
		{Type: Data, Addr: 0xC400, Data: []byte{0x3F}},
		{Type: Data, Addr: 0xFFFE, Data: []byte{0x00, 0xC4}},
	}, recs)
	assert.Equal(t, 5, s.Line())
	assert.Equal(t, 2, s.Ignored())
}

func TestScannerTITXT(t *testing.T) {
	in := "@C400\r\n" +
		"31 40 00 04\r\n" +
		"3F\r\n" +
		"@FFFE\r\n" +
		"00 C4\r\n" +
		"q\r\n" +
		"this line is never read\r\n"
	s := NewScanner(strings.NewReader(in), 0xC400)
	recs := scanAll(t, s)
	require.NoError(t, s.Err())
	assert.Equal(t, []Record{
		{Type: SetAddress, Addr: 0xC400},
		{Type: Data, Addr: 0xC400, Data: []byte{0x31, 0x40, 0x00, 0x04}},
		{Type: Data, Addr: 0xC404, Data: []byte{0x3F}},
		{Type: SetAddress, Addr: 0xFFFE},
		{Type: Data, Addr: 0xFFFE, Data: []byte{0x00, 0xC4}},
	}, recs)
	assert.Equal(t, 6, s.Line())
	assert.False(t, s.Scan())
}

func TestScannerOrigin(t *testing.T) {
	s := NewScanner(strings.NewReader("AA BB\nCC\n"), 0xE000)
	recs := scanAll(t, s)
	require.NoError(t, s.Err())
	assert.Equal(t, []Record{
		{Type: Data, Addr: 0xE000, Data: []byte{0xAA, 0xBB}},
		{Type: Data, Addr: 0xE002, Data: []byte{0xCC}},
	}, recs)
}

func TestScannerMixed(t *testing.T) {
	// Intel HEX records move the cursor used by the TI-TXT data lines.
	s := NewScanner(strings.NewReader(":02F0000011220B\n33\n"), 0xC400)
	recs := scanAll(t, s)
	require.NoError(t, s.Err())
	require.Len(t, recs, 2)
	assert.Equal(t, uint32(0xF002), recs[1].Addr)
}

func TestScannerSyntaxError(t *testing.T) {
	in := "@C400\n31 40\n31 4\n00 C4\n"
	s := NewScanner(strings.NewReader(in), 0xC400)
	recs := scanAll(t, s)
	assert.Len(t, recs, 2)
	var se *SyntaxError
	require.ErrorAs(t, s.Err(), &se)
	assert.Equal(t, 3, se.Line)
	assert.False(t, s.Scan())
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestScannerReadError(t *testing.T) {
	s := NewScanner(failReader{}, 0xC400)
	assert.False(t, s.Scan())
	assert.True(t, errors.Is(s.Err(), io.ErrClosedPipe))
}
