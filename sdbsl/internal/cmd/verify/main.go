// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/flashimg"
	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/util"
)

const Descr = "check the checksum and the reset vector of a bootloader image"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] BIN\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	base := fs.String(
		"base", "",
		"base `address` in hex (default: inferred from the image size)",
	)
	quiet := fs.Bool("quiet", false, "do not print diagnostic information")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	var w io.Writer = os.Stdout
	if *quiet {
		w = io.Discard
	}
	util.FatalErr(fs.Arg(0), run(w, fs.Arg(0), *base))
}

func run(w io.Writer, name, baseStr string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	base, err := imageBase(baseStr, len(data))
	if err != nil {
		return err
	}
	if err := flashimg.Verify(data, base); err != nil {
		return err
	}
	fmt.Fprintf(
		w, "%s: base %04X, %d bytes, checksum %02X ok\n",
		name, base, len(data), data[len(data)-2],
	)
	return nil
}

// imageBase parses s or, if s is empty, infers the base from the image size.
func imageBase(s string, size int) (uint16, error) {
	if s == "" {
		return flashimg.InferBase(size)
	}
	return util.ParseBase(s)
}
