// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convert

import (
	"debug/elf"
	"io"

	"github.com/pkg/errors"

	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/flashimg"
)

type Section struct {
	Name  string
	Paddr uint64 // physical location of the section in the Flash
	Data  []byte // section data
}

// ReadELF reads the loadable sections of the program. The order of the
// returned sections is unspecified.
func ReadELF(r io.ReaderAt) ([]*Section, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ss := make([]*Section, 0, 16)
	for _, s := range f.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		paddr := ^uint64(0)
		for _, p := range f.Progs {
			if p.Type != elf.PT_LOAD {
				continue
			}
			if p.Off <= s.Offset && s.Offset < p.Off+p.Filesz {
				paddr = p.Paddr + s.Offset - p.Off
				break
			}
		}
		if paddr == ^uint64(0) {
			return nil, errors.Errorf(
				"section '%s' is not in any loadable segment", s.Name,
			)
		}
		ss = append(ss, &Section{s.Name, paddr, data})
	}
	return ss, nil
}

// ELF builds the image from the loadable sections of the ELF file read from
// r.
func ELF(r io.ReaderAt, base uint16, opts ...Option) (*Result, error) {
	img, err := newImage(base, opts)
	if err != nil {
		return nil, err
	}
	sections, err := ReadELF(r)
	if err != nil {
		return nil, errors.Wrap(err, "readelf")
	}
	for _, s := range sections {
		if s.Paddr >= flashimg.Top {
			return nil, errors.Errorf(
				"section '%s' located at %#x above the 16-bit address space",
				s.Name, s.Paddr,
			)
		}
		off, err := img.Offset(uint32(s.Paddr))
		if err == nil {
			_, err = img.WriteAt(s.Data, int64(off))
		}
		if err != nil {
			return nil, errors.Wrapf(err, "section '%s'", s.Name)
		}
	}
	if err := finish(img); err != nil {
		return nil, err
	}
	return &Result{Image: img, Sections: len(sections)}, nil
}

func isELF(r io.ReaderAt) bool {
	var magic [len(elf.ELFMAG)]byte
	_, err := r.ReadAt(magic[:], 0)
	return err == nil && string(magic[:]) == elf.ELFMAG
}
