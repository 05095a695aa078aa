// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flashimg

import (
	"github.com/pkg/errors"
)

// XOR returns the XOR of all bytes in p.
func XOR(p []byte) byte {
	var sum byte
	for _, b := range p {
		sum ^= b
	}
	return sum
}

// InferBase returns the base address of a finalized image of size n.
func InferBase(n int) (uint16, error) {
	if n < 2 || n >= Top {
		return 0, errors.Wrapf(ErrLength, "%d bytes", n)
	}
	return uint16(Top - n), nil
}

// Verify checks the finalized image data the way the bootloader does before
// flashing it.
func Verify(data []byte, base uint16) error {
	if base == 0 {
		return ErrZeroBase
	}
	n := len(data)
	if n != Top-int(base) {
		return errors.Wrapf(
			ErrLength, "%d bytes, base %X requires %d", n, base, Top-int(base),
		)
	}
	if n < 2 {
		return ErrImageTooSmall
	}
	if data[n-1] != byte(base>>8) {
		rv := uint16(base&0xff) | uint16(data[n-1])<<8
		return &ResetVectorError{rv, base}
	}
	if sum := XOR(data[:n-2]); sum != data[n-2] {
		return errors.Wrapf(
			ErrChecksum, "computed %02X, stored %02X", sum, data[n-2],
		)
	}
	if !hasEntryCode(data) {
		return &EntryError{base}
	}
	return nil
}

// hasEntryCode reports whether any of the first entrySize bytes of the image
// is programmed. The reset vector in the last two bytes never counts as code.
func hasEntryCode(img []byte) bool {
	for _, b := range img[:min(entrySize, len(img)-2)] {
		if b != Erased {
			return true
		}
	}
	return false
}
