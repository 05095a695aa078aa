// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/flashimg"
)

func Warn(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

func Fatal(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// FatalErr prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// InOutFiles returns the input and output file names. If outName is empty it
// is derived from inName by replacing its extension with outSuffix.
func InOutFiles(inName, outName, outSuffix string) (string, string) {
	if outName == "" {
		outName = strings.TrimSuffix(inName, filepath.Ext(inName)) + outSuffix
	}
	return inName, outName
}

// ParseBase parses the base address written in hex without any prefix or
// suffix, e.g. C400.
func ParseBase(s string) (uint16, error) {
	if s == "" || len(s) > 4 {
		return 0, errors.Errorf("bad base address %q", s)
	}
	u, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, errors.Errorf("bad base address %q", s)
	}
	if u == 0 {
		return 0, flashimg.ErrZeroBase
	}
	return uint16(u), nil
}
