// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bin

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/convert"
	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/flashimg"
	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/util"
)

const Descr = "convert an Intel HEX, TI-TXT or ELF file to the bootloader image"

var errNotFound = errors.New("File Not Found")

type options struct {
	quiet  bool
	strict bool
}

func newFlagSet(cmd string) (*flag.FlagSet, *options) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] INFILE OUTFILE BASE\n\n"+
				"BASE is the hex address of the new beginning of MAIN memory\n"+
				"(no 0x prefix or h suffix). Example for G2553 (MAIN normally\n"+
				"at 0xC000, 1 KiB taken by the bootloader):\n"+
				"  %s v14project.hex v14project.bin C400\n\n"+
				"The arguments may be given in any order. File names must be\n"+
				"longer than 4 characters. Arguments starting with '-' or '/'\n"+
				"are ignored unless they are the options below, so give absolute\n"+
				"paths in another form, e.g. relative to the current directory.\n"+
				"Options:\n",
			cmd, cmd,
		)
		fs.PrintDefaults()
	}
	o := new(options)
	fs.BoolVar(&o.quiet, "quiet", false, "do not print diagnostic information")
	fs.BoolVar(
		&o.strict, "strict", false,
		"reject the base address if its low byte is not zero",
	)
	return fs, o
}

func Main(cmd string, args []string) {
	fs, o := newFlagSet(cmd)
	a, err := parseCmdLine(fs, args)
	if err != nil {
		util.Warn("%s: %v", cmd, err)
		fs.Usage()
		os.Exit(1)
	}
	var stdout io.Writer = os.Stdout
	if o.quiet {
		stdout = io.Discard
	}
	if err := flashimg.CheckBase(a.base); err != nil && !o.strict && !o.quiet {
		util.Warn(
			"warning: %v: the checksum replaces reset vector low byte %02X",
			err, byte(a.base),
		)
	}
	err = run(stdout, a, o.strict)
	if err == errNotFound {
		util.Warn("%s: %s", err, a.in)
		fs.Usage()
		os.Exit(1)
	}
	util.FatalErr(a.in, err)
}

func run(w io.Writer, a cmdArgs, strict bool) error {
	var opts []convert.Option
	if strict {
		opts = append(opts, convert.WithStrictBase())
	}
	res, err := convert.File(a.in, a.base, opts...)
	if errors.Is(err, os.ErrNotExist) {
		return errNotFound
	}
	if err != nil {
		return err
	}
	// Write the output only when the image passed all the checks.
	of, err := os.Create(a.out)
	if err != nil {
		return err
	}
	if _, err := res.Image.WriteTo(of); err != nil {
		of.Close()
		return err
	}
	if err := of.Close(); err != nil {
		return err
	}
	fmt.Fprintln(w, res.Summary())
	fmt.Fprintf(w, "%d bytes written to %s\n", res.Image.Len(), a.out)
	return nil
}
