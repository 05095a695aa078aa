// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record decodes the lines of firmware dumps in the Intel HEX and
// TI-TXT formats.
//
// Intel HEX lines carry their load address. TI-TXT sets the load address with
// @ADDR lines and the data lines that follow are stored contiguously from
// there on. The format is detected for every line by its first character.
package record

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Class describes the role of a line.
type Class uint8

const (
	Blank     Class = iota // empty or white space only
	HexData                // Intel HEX data record
	HexOther               // Intel HEX record of any other type
	TIAddress              // TI-TXT @ADDR line
	TIData                 // TI-TXT data line
	TIEnd                  // TI-TXT q line
)

// Type describes a decoded record.
type Type uint8

const (
	None       Type = iota // nothing to do
	Ignored                // Intel HEX record of a type other than data
	SetAddress             // move the write cursor to Addr
	Data                   // write Data at Addr
	Continue               // write Data at the write cursor
	End                    // end of input
)

type Record struct {
	Type Type
	Addr uint32
	Data []byte
}

const (
	hexHeaderLen  = 9 // :NNAAAATT
	hexDataRecord = 0x00
)

// SyntaxError reports a malformed line.
type SyntaxError struct {
	Line int // 0 if unknown
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return "syntax error: " + e.Msg
	}
	return fmt.Sprintf("syntax error: %s at line %d", e.Msg, e.Line)
}

func syntaxErr(f string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(f, args...)}
}

func trimEOL(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// Classify returns the class of line. A line that starts with ':' but whose
// record type can't be read is classified as HexData so that ParseHex reports
// the problem.
func Classify(line string) Class {
	line = trimEOL(line)
	if strings.TrimSpace(line) == "" {
		return Blank
	}
	switch line[0] {
	case ':':
		if len(line) >= hexHeaderLen {
			if t, err := strconv.ParseUint(line[7:9], 16, 8); err == nil && t != hexDataRecord {
				return HexOther
			}
		}
		return HexData
	case '@':
		return TIAddress
	case 'q':
		return TIEnd
	}
	return TIData
}

// Parse decodes a single line of any class.
func Parse(line string) (Record, error) {
	switch Classify(line) {
	case HexData, HexOther:
		return ParseHex(line)
	case TIAddress:
		return ParseTIAddress(line)
	case TIData:
		data, err := ParseTIData(line)
		if err != nil {
			return Record{}, err
		}
		return Record{Type: Continue, Data: data}, nil
	case TIEnd:
		return Record{Type: End}, nil
	}
	return Record{Type: None}, nil
}

// ParseHex decodes the Intel HEX record in line. Only the data records are
// decoded completely. Other record types return an Ignored record. The record
// checksum isn't verified.
func ParseHex(line string) (Record, error) {
	s := trimEOL(line)
	if len(s) == 0 || s[0] != ':' {
		return Record{}, syntaxErr("no colon char on the first line character")
	}
	if len(s) < hexHeaderLen {
		return Record{}, syntaxErr("record too short (%d characters)", len(s))
	}
	hdr, err := hex.DecodeString(s[1:hexHeaderLen])
	if err != nil {
		return Record{}, syntaxErr("bad record header %q", s[1:hexHeaderLen])
	}
	n := int(hdr[0])
	addr := uint32(binary.BigEndian.Uint16(hdr[1:3]))
	if hdr[3] != hexDataRecord {
		return Record{Type: Ignored, Addr: addr}, nil
	}
	end := hexHeaderLen + 2*n
	if len(s) < end {
		return Record{}, syntaxErr(
			"record declares %d data bytes but has %d hex digits",
			n, len(s)-hexHeaderLen,
		)
	}
	data, err := hex.DecodeString(s[hexHeaderLen:end])
	if err != nil {
		return Record{}, syntaxErr("bad data field: %v", err)
	}
	return Record{Type: Data, Addr: addr, Data: data}, nil
}

// ParseTIAddress decodes the @ADDR line.
func ParseTIAddress(line string) (Record, error) {
	s := strings.TrimSpace(line)
	if len(s) == 0 || s[0] != '@' {
		return Record{}, syntaxErr("no @ char on the first line character")
	}
	s = strings.TrimSpace(s[1:])
	if s == "" {
		return Record{}, syntaxErr("missing address after @")
	}
	addr, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return Record{}, syntaxErr("bad address %q", s)
	}
	return Record{Type: SetAddress, Addr: uint32(addr)}, nil
}

// ParseTIData decodes the TI-TXT data line. Every byte takes 3 characters:
// two hex digits and a space or tab separator (optional after the last one).
func ParseTIData(line string) ([]byte, error) {
	s := trimEOL(line)
	data := make([]byte, 0, (len(s)+1)/3)
	for i := 0; i < len(s); i += 3 {
		if i+2 > len(s) {
			return nil, syntaxErr("dangling hex digit at column %d", i+1)
		}
		if i+2 < len(s) && s[i+2] != ' ' && s[i+2] != '\t' {
			return nil, syntaxErr("expected separator at column %d", i+3)
		}
		b, err := hex.DecodeString(s[i : i+2])
		if err != nil {
			return nil, syntaxErr("bad byte %q at column %d", s[i:i+2], i+1)
		}
		data = append(data, b[0])
	}
	return data, nil
}
