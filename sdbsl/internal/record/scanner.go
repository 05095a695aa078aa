// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Scanner reads the lines of a firmware dump and returns the records that
// write data or set the write cursor. Continue records are resolved to Data
// records at the current cursor address.
type Scanner struct {
	sc      *bufio.Scanner
	cursor  uint32
	line    int
	ignored int
	rec     Record
	err     error
	done    bool
}

// NewScanner returns a scanner reading from r. TI-TXT data that precede any
// @ADDR line are stored from the origin address on.
func NewScanner(r io.Reader, origin uint32) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r), cursor: origin}
}

// Scan advances to the next record which is then available through the Record
// method. It returns false at the end of input, at the TI-TXT q line or on the
// first error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	for s.sc.Scan() {
		s.line++
		rec, err := Parse(s.sc.Text())
		if err != nil {
			var se *SyntaxError
			if errors.As(err, &se) {
				se.Line = s.line
			}
			s.err = err
			s.done = true
			return false
		}
		switch rec.Type {
		case None:
			continue
		case Ignored:
			s.ignored++
			continue
		case End:
			s.done = true
			return false
		case SetAddress:
			s.cursor = rec.Addr
		case Continue:
			rec.Type = Data
			rec.Addr = s.cursor
			s.cursor += uint32(len(rec.Data))
		case Data:
			s.cursor = rec.Addr + uint32(len(rec.Data))
		}
		s.rec = rec
		return true
	}
	if err := s.sc.Err(); err != nil {
		s.err = errors.Wrap(err, "read")
	}
	s.done = true
	return false
}

// Record returns the most recent record read by Scan.
func (s *Scanner) Record() Record { return s.rec }

// Err returns the first error encountered by the Scanner.
func (s *Scanner) Err() error { return s.err }

// Line returns the number of lines read so far.
func (s *Scanner) Line() int { return s.line }

// Ignored returns the number of skipped Intel HEX records of types other than
// data.
func (s *Scanner) Ignored() int { return s.ignored }
