// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flashimg

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrZeroBase      = errors.New("base address must be nonzero")
	ErrUnalignedBase = errors.New("base address low byte is not zero")
	ErrImageTooSmall = errors.New("image too small to hold the reset vector")
	ErrFinalized     = errors.New("image already finalized")
	ErrChecksum      = errors.New("checksum mismatch")
	ErrLength        = errors.New("bad image length")
)

// AddressError reports data or a load address located below the base
// address, that is inside the memory reserved for the bootloader.
type AddressError struct {
	Addr uint32
	Base uint16
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("file locates data at %X below %X", e.Addr, e.Base)
}

// ResetVectorError reports a reset vector that does not point at the base
// address.
type ResetVectorError struct {
	Vector uint16
	Base   uint16
}

func (e *ResetVectorError) Error() string {
	return fmt.Sprintf(
		"reset vector %X must show program starts at %X", e.Vector, e.Base,
	)
}

// EntryError reports erased flash at the program entry point.
type EntryError struct {
	Entry uint16
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("no code stored where reset vector points - %X", e.Entry)
}

// RangeError reports an access outside the image. It is never caused by
// a well formed input alone.
type RangeError struct {
	Off int
	N   int
	Len int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf(
		"flashimg: %d byte(s) at offset %#x outside image of %d bytes",
		e.N, e.Off, e.Len,
	)
}
