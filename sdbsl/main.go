// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sdbsl prepares firmware updates for the MSP430 SD card bootloader.
//
// The bootloader occupies the beginning of the MAIN memory and expects the
// update as a binary image of the rest of it, with the low byte of the reset
// vector replaced by the XOR checksum of the image. The short invocation
//
//	sdbsl INFILE OUTFILE BASE
//
// is equivalent to sdbsl bin INFILE OUTFILE BASE.
package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/cmd/bin"
	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/cmd/hex"
	"github.com/gbhug5a/SD-Card-Bootloader-for-MSP430/sdbsl/internal/cmd/verify"
)

type tool struct {
	descr string
	main  func(cmd string, args []string)
}

var tools = map[string]tool{
	"bin":    {bin.Descr, bin.Main},
	"hex":    {hex.Descr, hex.Main},
	"verify": {verify.Descr, verify.Main},
}

func printToolList() {
	names := slices.Sorted(maps.Keys(tools))
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  sdbsl COMMAND [ARGUMENTS]\n")
	uw.WriteString("  sdbsl INFILE OUTFILE BASE\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "/?" {
		printToolList()
		return
	}
	tool, ok := tools[os.Args[1]]
	if !ok {
		bin.Main(os.Args[0], os.Args[1:])
		return
	}
	tool.main(os.Args[1], os.Args[2:])
}
