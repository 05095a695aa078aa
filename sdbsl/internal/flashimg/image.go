// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flashimg implements the flat image of the MAIN memory loaded by the
// MSP430 SD card bootloader.
//
// The image starts at the base address, the first address not reserved by
// the bootloader, and ends at 0xFFFF. Its last two bytes hold the reset
// vector until Finalize replaces the low one with the XOR checksum of all
// the preceding bytes.
package flashimg

import (
	"io"
)

const (
	Erased = 0xff    // value of the erased (unprogrammed) flash byte
	Top    = 0x10000 // first address past the MSP430 16-bit address space

	entrySize = 4 // bytes at the entry point that must not be erased
)

type Image struct {
	base  uint16
	buf   []byte
	sum   byte // XOR of all bytes in buf
	final bool
}

// New returns an erased image that spans from base to 0xFFFF.
func New(base uint16) (*Image, error) {
	if base == 0 {
		return nil, ErrZeroBase
	}
	buf := make([]byte, Top-int(base))
	for i := range buf {
		buf[i] = Erased
	}
	return &Image{base: base, buf: buf, sum: XOR(buf)}, nil
}

// CheckBase reports whether the low byte of the base address is zero. Only
// then the bootloader can recreate the reset vector low byte replaced by the
// checksum.
func CheckBase(base uint16) error {
	if base == 0 {
		return ErrZeroBase
	}
	if base&0xff != 0 {
		return ErrUnalignedBase
	}
	return nil
}

func (m *Image) Base() uint16    { return m.base }
func (m *Image) Len() int        { return len(m.buf) }
func (m *Image) Checksum() byte  { return m.sum }
func (m *Image) Finalized() bool { return m.final }

// Bytes returns the image content. The slice aliases the image buffer.
func (m *Image) Bytes() []byte { return m.buf }

// Offset translates the absolute address addr into the image offset.
func (m *Image) Offset(addr uint32) (int, error) {
	if addr < uint32(m.base) {
		return 0, &AddressError{addr, m.base}
	}
	off := int(addr - uint32(m.base))
	if off >= len(m.buf) {
		return 0, &RangeError{off, 1, len(m.buf)}
	}
	return off, nil
}

// WriteAt writes p at the image offset off updating the running checksum.
// Nothing is written if p doesn't fit in the image.
func (m *Image) WriteAt(p []byte, off int64) (int, error) {
	if m.final {
		return 0, ErrFinalized
	}
	if off < 0 || off+int64(len(p)) > int64(len(m.buf)) {
		return 0, &RangeError{int(off), len(p), len(m.buf)}
	}
	buf := m.buf[off : int(off)+len(p)]
	for i, b := range p {
		m.sum ^= buf[i] // take out the old byte
		buf[i] = b
		m.sum ^= b
	}
	return len(p), nil
}

// Set writes the single byte b at offset off.
func (m *Image) Set(off int, b byte) error {
	_, err := m.WriteAt([]byte{b}, int64(off))
	return err
}

// ReadAt implements io.ReaderAt.
func (m *Image) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, &RangeError{int(off), len(p), len(m.buf)}
	}
	if off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ResetVector returns the little-endian word stored in the last two bytes.
func (m *Image) ResetVector() (uint16, error) {
	n := len(m.buf)
	if n < 2 {
		return 0, ErrImageTooSmall
	}
	return uint16(m.buf[n-2]) | uint16(m.buf[n-1])<<8, nil
}

// Validate checks that the reset vector points at the base address and that
// there is some code at this address.
func (m *Image) Validate() error {
	rv, err := m.ResetVector()
	if err != nil {
		return err
	}
	if rv != m.base {
		return &ResetVectorError{rv, m.base}
	}
	if !hasEntryCode(m.buf) {
		return &EntryError{rv}
	}
	return nil
}

// Finalize removes the reset vector from the checksum and stores the checksum
// in place of the reset vector low byte. The image can't be modified after
// that.
func (m *Image) Finalize() error {
	if m.final {
		return ErrFinalized
	}
	n := len(m.buf)
	if n < 2 {
		return ErrImageTooSmall
	}
	m.sum ^= m.buf[n-2] ^ m.buf[n-1]
	m.buf[n-2] = m.sum
	m.final = true
	return nil
}

// WriteTo writes the whole image to w.
func (m *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(m.buf)
	return int64(n), err
}

var (
	_ io.WriterAt = (*Image)(nil)
	_ io.ReaderAt = (*Image)(nil)
	_ io.WriterTo = (*Image)(nil)
)
