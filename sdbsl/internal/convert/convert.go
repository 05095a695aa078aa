// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert builds the SD card bootloader image from a firmware dump in
// the Intel HEX, TI-TXT or ELF format.
package convert

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/flashimg"
	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/record"
)

type Options struct {
	strictBase bool
}

type Option func(*Options)

// WithStrictBase makes Convert reject a base address with nonzero low byte.
func WithStrictBase() Option {
	return func(o *Options) {
		o.strictBase = true
	}
}

type Result struct {
	Image    *flashimg.Image // validated and finalized image
	Lines    int             // lines read
	Records  int             // data records written to the image
	Ignored  int             // Intel HEX records of types other than data
	Sections int             // ELF sections written to the image
}

// Summary describes the input in terms of its format: sections for ELF,
// lines and records otherwise.
func (r *Result) Summary() string {
	if r.Sections != 0 {
		return fmt.Sprintf("%d ELF sections", r.Sections)
	}
	return fmt.Sprintf(
		"%d lines, %d data records, %d records ignored",
		r.Lines, r.Records, r.Ignored,
	)
}

// Convert reads the firmware dump from r and returns the finalized image
// that starts at base. Any malformed line, data located outside the image or
// failed validation aborts the conversion.
func Convert(r io.Reader, base uint16, opts ...Option) (*Result, error) {
	img, err := newImage(base, opts)
	if err != nil {
		return nil, err
	}
	res := new(Result)
	sc := record.NewScanner(r, uint32(base))
	for sc.Scan() {
		rec := sc.Record()
		if err := apply(img, rec); err != nil {
			return nil, errors.Wrapf(err, "line %d", sc.Line())
		}
		if rec.Type == record.Data {
			res.Records++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	res.Lines, res.Ignored = sc.Line(), sc.Ignored()
	if err := finish(img); err != nil {
		return nil, err
	}
	res.Image = img
	return res, nil
}

func newImage(base uint16, opts []Option) (*flashimg.Image, error) {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.strictBase {
		if err := flashimg.CheckBase(base); err != nil {
			return nil, err
		}
	}
	return flashimg.New(base)
}

func finish(img *flashimg.Image) error {
	if err := img.Validate(); err != nil {
		return err
	}
	return img.Finalize()
}

func apply(img *flashimg.Image, rec record.Record) error {
	off, err := img.Offset(rec.Addr)
	if err != nil {
		return err
	}
	if rec.Type != record.Data {
		return nil
	}
	_, err = img.WriteAt(rec.Data, int64(off))
	return err
}

// File converts the named firmware file. ELF files are recognized by their
// magic number, any other file is read as Intel HEX or TI-TXT.
func File(name string, base uint16, opts ...Option) (*Result, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if isELF(f) {
		return ELF(f, base, opts...)
	}
	return Convert(f, base, opts...)
}
